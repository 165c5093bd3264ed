package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/captioncraft/captioncraft/internal/subtitle"
	"github.com/captioncraft/captioncraft/internal/translate"
)

var translateCmd = &cobra.Command{
	Use:   "translate [subtitle_file]",
	Short: "Translate subtitles to another language using AI",
	Long: `Translate an existing subtitle file to another language using AI.

Supports SRT and VTT formats. Styling and cue timing are preserved;
only the cue text is translated.

The --overlay flag creates bilingual subtitles with the translated text
first, followed by the original text on the next line.

Examples:
  captioncraft translate video.srt --target-language japanese
  captioncraft translate video.vtt --target-language ja --overlay
  captioncraft translate video.vtt -l english --target-language spanish -o translated.vtt`,
	Args: cobra.ExactArgs(1),
	RunE: runTranslate,
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().
		StringP("target-language", "t", "", "Target language for translation (required)")
	translateCmd.Flags().
		Bool("overlay", false, "Overlay translated text with original (bilingual subtitles)")
	translateCmd.Flags().
		StringP("api-key", "k", "", "API key (or set GEMINI_API_KEY/OPENAI_API_KEY/ANTHROPIC_API_KEY env var)")
	translateCmd.Flags().
		String("model", "", "Model to use for translation (provider-specific, uses sensible defaults)")
	translateCmd.Flags().
		Bool("model-override", false, "Allow any custom model, bypassing provider model validation")
	translateCmd.Flags().
		String("provider", "gemini", "Translation provider (gemini, openai, anthropic)")
	translateCmd.Flags().
		Int("concurrency", 3, "Number of parallel translation workers")
	translateCmd.Flags().
		Int("batch-size", 50, "Number of subtitle cues per API request")

	_ = translateCmd.MarkFlagRequired("target-language")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	subtitlePath := args[0]
	ctx := context.Background()

	targetLang, _ := cmd.Flags().GetString("target-language")
	overlay, _ := cmd.Flags().GetBool("overlay")
	apiKey, _ := cmd.Flags().GetString("api-key")
	model, _ := cmd.Flags().GetString("model")
	modelOverride, _ := cmd.Flags().GetBool("model-override")
	providerStr, _ := cmd.Flags().GetString("provider")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	batchSize, _ := cmd.Flags().GetInt("batch-size")
	outputPath, _ := cmd.Flags().GetString("output")
	inputLang, _ := cmd.Flags().GetString("language")

	if _, err := os.Stat(subtitlePath); os.IsNotExist(err) {
		return fmt.Errorf("subtitle file not found: %s", subtitlePath)
	}

	ext := strings.ToLower(filepath.Ext(subtitlePath))
	if ext != ".srt" && ext != ".vtt" {
		return fmt.Errorf(
			"unsupported subtitle format %q: use .srt or .vtt",
			ext,
		)
	}

	if targetLang == "" {
		return fmt.Errorf("target language is required")
	}

	if inputLang != "" &&
		strings.EqualFold(
			strings.TrimSpace(inputLang),
			strings.TrimSpace(targetLang),
		) {
		return fmt.Errorf(
			"input language %q and target language %q cannot be the same",
			inputLang,
			targetLang,
		)
	}

	provider := translate.Provider(providerStr)

	if apiKey == "" {
		switch provider {
		case translate.ProviderGemini:
			apiKey = os.Getenv("GEMINI_API_KEY")
		case translate.ProviderOpenAI:
			apiKey = os.Getenv("OPENAI_API_KEY")
		case translate.ProviderAnthropic:
			apiKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	}
	if apiKey == "" {
		var envVar string
		switch provider {
		case translate.ProviderGemini:
			envVar = "GEMINI_API_KEY"
		case translate.ProviderOpenAI:
			envVar = "OPENAI_API_KEY"
		case translate.ProviderAnthropic:
			envVar = "ANTHROPIC_API_KEY"
		default:
			envVar = "API_KEY"
		}
		return fmt.Errorf(
			"API key is required: use --api-key flag or set %s environment variable",
			envVar,
		)
	}

	if model != "" && !modelOverride {
		switch provider {
		case translate.ProviderGemini:
			if !isValidGeminiModel(model) {
				return fmt.Errorf(
					"unsupported Gemini model %q: valid models are gemini-3-pro-preview, gemini-3-flash-preview, gemini-2.5-pro, gemini-2.5-flash, gemini-2.5-flash-lite (use --model-override to bypass)",
					model,
				)
			}
		case translate.ProviderOpenAI:
			if !isValidOpenAIModel(model) {
				return fmt.Errorf(
					"unsupported OpenAI model %q: valid models are o1, o3-mini, o1-pro, o3, gpt-5, gpt-5-nano, gpt-5-mini, gpt-5-pro, gpt-5.1, gpt-5.2, gpt-5.2-pro (use --model-override to bypass)",
					model,
				)
			}
		}
	}

	if concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive, got %d", concurrency)
	}
	if batchSize <= 0 {
		return fmt.Errorf("batch-size must be positive, got %d", batchSize)
	}

	if outputPath == "" {
		baseName := strings.TrimSuffix(subtitlePath, filepath.Ext(subtitlePath))
		if overlay {
			outputPath = fmt.Sprintf(
				"%s.%s.overlay%s",
				baseName,
				targetLang,
				ext,
			)
		} else {
			outputPath = fmt.Sprintf("%s.%s%s", baseName, targetLang, ext)
		}
	}

	logger.Infow("Starting subtitle translation",
		"input", subtitlePath,
		"output", outputPath,
		"target_language", targetLang,
		"input_language", inputLang,
		"overlay", overlay,
		"model", model,
	)

	logger.Infow("Parsing subtitle file")
	subFile, err := subtitle.Open(subtitlePath)
	if err != nil {
		return fmt.Errorf("failed to parse subtitle file: %w", err)
	}

	doc := subFile.Document()
	captions := doc.Captions()
	if len(captions) == 0 {
		return fmt.Errorf("subtitle file contains no cues")
	}

	logger.Infow("Parsed subtitle file",
		"cues", len(captions),
		"format", subFile.Format(),
	)

	opts := translate.Options{
		InputLanguage:  inputLang,
		TargetLanguage: targetLang,
		Model:          model,
		BatchSize:      batchSize,
	}

	translator, err := translate.Factory(ctx, provider, apiKey, opts)
	if err != nil {
		return fmt.Errorf("failed to create translator: %w", err)
	}

	items := make([]translate.Item, len(captions))
	for i, caption := range captions {
		items[i] = translate.Item{
			Index: i,
			Text:  caption.Text,
		}
	}

	logger.Infow("Translating subtitles",
		"items", len(items),
		"concurrency", concurrency,
	)

	var results []translate.Result
	if concurrentTranslator, ok := translator.(translate.ConcurrentTranslator); ok {
		results, err = concurrentTranslator.TranslateWithConcurrency(
			ctx,
			items,
			concurrency,
		)
	} else {
		results, err = translator.Translate(ctx, items)
	}
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}

	logger.Infow("Translation complete",
		"results", len(results),
	)

	for _, result := range results {
		if result.Index < 0 || result.Index >= len(captions) {
			logger.Warnw("Skipping invalid result index",
				"index", result.Index,
				"max", len(captions)-1,
			)
			continue
		}

		text := result.Text
		if overlay {
			// translated + newline + original
			text = result.Text + "\n" + captions[result.Index].Text
		}
		if err := subFile.SetText(result.Index, text); err != nil {
			return fmt.Errorf(
				"failed to set text for cue %d: %w",
				result.Index,
				err,
			)
		}
	}

	logger.Infow("Writing output file")
	if err := subFile.Write(outputPath); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Subtitles translated successfully: %s\n", absOutput)
	fmt.Printf("  Cues: %d\n", len(captions))
	fmt.Printf("  Target language: %s\n", targetLang)
	if overlay {
		fmt.Printf("  Mode: bilingual overlay\n")
	}

	return nil
}
