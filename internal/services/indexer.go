package services

import (
	"context"
	"fmt"
)

// ProfileIndexer embeds profile summaries and keeps the vector index in
// sync. Indexing is best-effort: callers log failures instead of failing
// the analysis request that triggered them.
type ProfileIndexer interface {
	IndexProfile(ctx context.Context, userID string, summary string) error
	SimilarProfiles(ctx context.Context, userID string, summary string, limit int) ([]SimilarProfile, error)
	RemoveProfile(ctx context.Context, userID string) error
}

type profileIndexer struct {
	embeddings EmbeddingService
	index      ProfileIndexService
}

func NewProfileIndexer(embeddings EmbeddingService, index ProfileIndexService) ProfileIndexer {
	return &profileIndexer{
		embeddings: embeddings,
		index:      index,
	}
}

// IndexProfile implements ProfileIndexer.
func (p *profileIndexer) IndexProfile(ctx context.Context, userID string, summary string) error {
	if summary == "" {
		return fmt.Errorf("nothing to index: empty summary for user %s", userID)
	}

	embedding, err := p.embeddings.GenerateEmbedding(ctx, summary)
	if err != nil {
		return fmt.Errorf("failed to embed profile summary: %w", err)
	}

	return p.index.UpsertProfile(ctx, userID, summary, embedding)
}

// SimilarProfiles implements ProfileIndexer.
func (p *profileIndexer) SimilarProfiles(ctx context.Context, userID string, summary string, limit int) ([]SimilarProfile, error) {
	embedding, err := p.embeddings.GenerateEmbedding(ctx, summary)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query summary: %w", err)
	}

	return p.index.SearchSimilar(ctx, embedding, userID, limit)
}

// RemoveProfile implements ProfileIndexer.
func (p *profileIndexer) RemoveProfile(ctx context.Context, userID string) error {
	return p.index.DeleteProfile(ctx, userID)
}
