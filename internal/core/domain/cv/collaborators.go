package cv

import "context"

// FileKeyGenerator produces unique storage keys for uploaded files.
type FileKeyGenerator interface {
	GenerateFileKey() string
}

// FileStorage keeps uploaded CV files, addressed by an opaque key.
type FileStorage interface {
	Upload(ctx context.Context, key string, contentType string, data []byte) error
	Download(ctx context.Context, key string) ([]byte, error)
}

// TextExtractor turns an uploaded file into plain text.
// Returns ErrUnsupportedFileType for content types it cannot handle.
type TextExtractor interface {
	ExtractText(contentType string, data []byte) (string, error)
}

// ProfileAnalyzer extracts a structured profile from CV text.
type ProfileAnalyzer interface {
	AnalyzeProfile(ctx context.Context, text string) (Profile, error)
}

// AnalysisScheduler enqueues an uploaded CV for asynchronous analysis.
type AnalysisScheduler interface {
	ScheduleAnalysis(ctx context.Context, cv CV) error
}

// AnalyzedEventPublisher notifies interested parties that analysis completed.
type AnalyzedEventPublisher interface {
	PublishAnalyzed(ctx context.Context, cv CV) error
}
