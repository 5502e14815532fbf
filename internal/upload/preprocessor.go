package upload

import "context"

// FilePreprocessorStrategy detects and expands container files into a
// sequence of inner files.
type FilePreprocessorStrategy interface {
	CanProcess(file UploadedFile) bool
	Process(ctx context.Context, file UploadedFile, yield func(UploadedFile) error) error
}

// FilePreprocessor routes an uploaded file through the first strategy
// that claims it; files no strategy claims are forwarded unchanged.
type FilePreprocessor struct {
	strategies []FilePreprocessorStrategy
}

func NewFilePreprocessor(strategies ...FilePreprocessorStrategy) *FilePreprocessor {
	return &FilePreprocessor{strategies: strategies}
}

func (p *FilePreprocessor) Process(ctx context.Context, file UploadedFile, yield func(UploadedFile) error) error {
	for _, strategy := range p.strategies {
		if strategy.CanProcess(file) {
			return strategy.Process(ctx, file, yield)
		}
	}

	return yield(file)
}
