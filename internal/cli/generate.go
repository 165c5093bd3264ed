package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/captioncraft/captioncraft/internal/audio"
	"github.com/captioncraft/captioncraft/internal/config"
	"github.com/captioncraft/captioncraft/internal/subtitle"
	"github.com/captioncraft/captioncraft/internal/transcribe"
	"github.com/captioncraft/captioncraft/internal/video"
)

var generateCmd = &cobra.Command{
	Use:   "generate [media_file]",
	Short: "Generate styled subtitles for an audio or video file",
	Long: `Generate subtitles for the specified audio or video file using AI transcription.

The command accepts both audio files (mp3, wav, aac, etc.) and video files (mp4, mkv, etc.).
For video files, audio is automatically extracted before transcription.

The audio is split into chunks (default 1 minute) and transcribed in parallel.
When the transcription carries per-segment timing, cues use the exact timings;
otherwise the transcript is split into evenly spaced cues across the total
duration. With --karaoke, each cue is further split into word groups that
highlight in sequence.

Examples:
  captioncraft generate video.mp4
  captioncraft generate audio.mp3 --format srt
  captioncraft generate video.mp4 --provider gemini --api-key YOUR_KEY
  captioncraft generate podcast.mp3 --karaoke --words-per-chunk 2`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().
		String("provider", "openai", "Transcription provider (openai, gemini)")
	generateCmd.Flags().
		StringP("api-key", "k", "", "API key (or set OPENAI_API_KEY/GEMINI_API_KEY env var)")
	generateCmd.Flags().
		IntP("chunk-duration", "d", 1, "Chunk duration in minutes for splitting audio")
	generateCmd.Flags().
		StringP("format", "f", "vtt", "Output subtitle format (vtt, srt)")
	generateCmd.Flags().
		Int("concurrency", 3, "Number of parallel transcription workers")
	generateCmd.Flags().
		String("model", "", "Model to use for transcription (provider-specific defaults)")
	generateCmd.Flags().
		String("transcript-language", "native", "Output language for transcript ('native' keeps the original language)")
	generateCmd.Flags().
		Bool("karaoke", false, "Split cues into word groups that highlight in sequence")
	generateCmd.Flags().
		Int("words-per-chunk", 3, "Words per highlighted group in karaoke mode")
	generateCmd.Flags().
		String("style", "normal", "Style name applied to regular cues")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	mediaPath := args[0]
	ctx := context.Background()

	if _, err := os.Stat(mediaPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", mediaPath)
	}
	if !audio.IsMediaFile(mediaPath) {
		return fmt.Errorf("unsupported file type: %s (expected audio or video file)", filepath.Ext(mediaPath))
	}

	providerStr, _ := cmd.Flags().GetString("provider")
	apiKey, _ := cmd.Flags().GetString("api-key")
	chunkDuration, _ := cmd.Flags().GetInt("chunk-duration")
	formatStr, _ := cmd.Flags().GetString("format")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	model, _ := cmd.Flags().GetString("model")
	outputPath, _ := cmd.Flags().GetString("output")
	language, _ := cmd.Flags().GetString("language")
	transcriptLang, _ := cmd.Flags().GetString("transcript-language")
	karaoke, _ := cmd.Flags().GetBool("karaoke")
	wordsPerChunk, _ := cmd.Flags().GetInt("words-per-chunk")
	styleName, _ := cmd.Flags().GetString("style")

	provider := transcribe.Provider(providerStr)
	switch provider {
	case transcribe.ProviderOpenAI, transcribe.ProviderGemini:
	default:
		return fmt.Errorf("unsupported provider %q: use openai or gemini", providerStr)
	}

	if apiKey == "" {
		switch provider {
		case transcribe.ProviderOpenAI:
			apiKey = os.Getenv("OPENAI_API_KEY")
		case transcribe.ProviderGemini:
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
	}
	if apiKey == "" {
		return fmt.Errorf("API key is required: use --api-key flag or set the provider's environment variable")
	}

	if provider == transcribe.ProviderOpenAI &&
		!isValidOpenAITranscriptLanguage(transcriptLang) {
		return fmt.Errorf(
			"OpenAI transcription only supports 'native' or 'english' transcript languages, got %q",
			transcriptLang,
		)
	}

	var format subtitle.Format
	switch strings.ToLower(formatStr) {
	case "srt":
		format = subtitle.FormatSRT
	case "vtt":
		format = subtitle.FormatVTT
	default:
		return fmt.Errorf("unsupported format %q: use vtt or srt", formatStr)
	}

	if karaoke && wordsPerChunk <= 0 {
		return fmt.Errorf("words-per-chunk must be positive, got %d", wordsPerChunk)
	}
	if concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive, got %d", concurrency)
	}

	if outputPath == "" {
		baseName := strings.TrimSuffix(mediaPath, filepath.Ext(mediaPath))
		outputPath = baseName + subtitle.GetExtensionForFormat(format)
	}

	cfg := loadConfig(cmd)

	logger.Infow("Starting subtitle generation",
		"input", mediaPath,
		"output", outputPath,
		"provider", providerStr,
		"format", formatStr,
		"chunk_duration", chunkDuration,
		"concurrency", concurrency,
		"karaoke", karaoke,
	)

	tempDir, err := os.MkdirTemp("", "captioncraft-*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	audioPath, err := prepareAudio(ctx, mediaPath, tempDir)
	if err != nil {
		return err
	}

	duration, err := audio.GetDuration(audioPath)
	if err != nil {
		return fmt.Errorf("failed to get audio duration: %w", err)
	}

	logger.Infow("Audio prepared",
		"duration", duration.String(),
	)

	chunkDir := filepath.Join(tempDir, "chunks")
	chunkDur := time.Duration(chunkDuration) * time.Minute

	chunks, err := audio.ChunkAudio(ctx, audioPath, chunkDur, chunkDir)
	if err != nil {
		return fmt.Errorf("failed to split audio: %w", err)
	}

	logger.Infow("Created audio chunks",
		"count", len(chunks),
	)

	transcribeOpts := transcribe.Options{
		Language:           language,
		TranscriptLanguage: transcriptLang,
		Model:              model,
	}

	transcriber, err := transcribe.Factory(ctx, provider, apiKey, transcribeOpts)
	if err != nil {
		return fmt.Errorf("failed to create transcriber: %w", err)
	}

	logger.Infow("Transcribing audio",
		"concurrency", concurrency,
	)

	var result *transcribe.Result
	if concurrent, ok := transcriber.(transcribe.ConcurrentTranscriber); ok {
		result, err = concurrent.TranscribeWithChunks(ctx, chunks, concurrency)
	} else {
		result, err = transcriber.Transcribe(ctx, audioPath)
	}
	if err != nil {
		return fmt.Errorf("transcription failed: %w", err)
	}

	total := result.Duration
	if total <= 0 {
		total = duration
	}

	segments, source := subtitle.Normalize(result.Text, result.Segments, total)
	if len(segments) == 0 {
		logger.Warnw("Transcription produced no usable text, writing empty subtitle file")
	}
	if source == subtitle.SourceFallback {
		logger.Warnw("No segment timing in transcription, using approximate timing",
			"segments", len(segments),
		)
	}

	doc := buildDocument(cfg, segments, source, karaoke, wordsPerChunk, styleName)

	if err := doc.CheckMonotonic(); err != nil {
		logger.Warnw("Cue timing is not monotonic",
			"error", err,
		)
	}

	writer, err := subtitle.NewWriter(format)
	if err != nil {
		return fmt.Errorf("failed to create subtitle writer: %w", err)
	}

	if err := writer.Write(doc, outputPath); err != nil {
		return fmt.Errorf("failed to write subtitles: %w", err)
	}

	if err := rememberRecentFile(cfg, mediaPath); err != nil {
		logger.Warnw("Failed to record recent file", "error", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Subtitles generated successfully: %s\n", absOutput)
	fmt.Printf("  %s\n", doc.Summary())
	fmt.Printf("  Duration: %s\n", duration.String())

	return nil
}

// prepareAudio produces a compressed mono audio file suitable for
// transcription, extracting the audio track first for video inputs.
func prepareAudio(
	ctx context.Context,
	mediaPath, tempDir string,
) (string, error) {
	audioPath := filepath.Join(tempDir, "audio.mp3")
	compressionOpts := audio.DefaultCompressionOptions()

	if audio.IsVideoFile(mediaPath) {
		logger.Infow("Extracting audio from video")

		processor := video.NewProcessor(tempDir)
		extractOpts := video.ExtractAudioOptions{
			Format:     compressionOpts.Format,
			SampleRate: compressionOpts.SampleRate,
			Channels:   compressionOpts.Channels,
			Bitrate:    compressionOpts.Bitrate,
		}

		if err := processor.ExtractAudio(ctx, mediaPath, audioPath, extractOpts); err != nil {
			return "", fmt.Errorf("failed to extract audio: %w", err)
		}
		return audioPath, nil
	}

	logger.Infow("Compressing audio for transcription")
	if err := audio.CompressAudio(ctx, mediaPath, audioPath, compressionOpts); err != nil {
		return "", fmt.Errorf("failed to compress audio: %w", err)
	}
	return audioPath, nil
}

// buildDocument assembles the subtitle document from normalized segments,
// with styles resolved from the settings store.
func buildDocument(
	cfg config.Provider,
	segments []subtitle.Segment,
	source subtitle.Source,
	karaoke bool,
	wordsPerChunk int,
	styleName string,
) *subtitle.Document {
	doc := subtitle.NewDocument()
	doc.SetSource(source)

	// An empty transcript still yields a valid document, just the
	// header with no styles or cues.
	if len(segments) == 0 {
		return doc
	}

	doc.SetStyle("normal", []subtitle.Property{
		{Name: "color", Value: cfg.Get("default_styles.text_color", "#FFFFFF")},
		{Name: "font-family", Value: cfg.Get("default_styles.font_family", "Arial")},
		{Name: "font-size", Value: cfg.Get("default_styles.font_size", "24px")},
	})
	doc.SetStyle("highlight", []subtitle.Property{
		{Name: "color", Value: cfg.Get("default_styles.highlight_color", "#FFD700")},
		{Name: "background-color", Value: cfg.Get("default_styles.background_color", "#000000")},
	})

	for _, seg := range segments {
		if karaoke {
			words := subtitle.WordByWord(
				seg.StartTime,
				seg.EndTime,
				seg.Text,
				wordsPerChunk,
			)
			for _, w := range words {
				doc.AddCaption(w.StartTime, w.EndTime, w.Text, "highlight")
			}
			continue
		}
		doc.AddCaption(seg.StartTime, seg.EndTime, seg.Text, styleName)
	}

	return doc
}

// rememberRecentFile records the opened media file in the settings store
// and persists it.
func rememberRecentFile(cfg *config.Store, path string) error {
	if err := cfg.AddRecentFile(path); err != nil {
		return err
	}
	return cfg.Save()
}
