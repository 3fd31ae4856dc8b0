// ABOUTME: Feed operations that honor runtime feature flags
// ABOUTME: Lets operators toggle caching and concurrent fetching without a redeploy

package feed

import (
	"context"

	"github.com/sundeep8967/keypoints-backend-1/core/domain"
	"github.com/sundeep8967/keypoints-backend-1/pkg/featureflags"
)

// FetchWithFlags fetches a single feed, consulting feature flags for cache use
func (s *FeedService) FetchWithFlags(ctx context.Context, plan FetchPlan) (domain.FeedDocument, error) {
	if featureflags.IsEnabled(ctx, featureflags.CacheEnabled) {
		return s.Fetch(ctx, plan)
	}

	if s.deps.Logger != nil {
		s.deps.Logger.Debug("Feed cache disabled by feature flag", map[string]interface{}{
			"category": plan.Category,
			"feature":  string(featureflags.CacheEnabled),
		})
	}

	feedURL, info, err := s.planURL(plan)
	if err != nil {
		return domain.FeedDocument{}, err
	}

	entries, err := s.fetchEntriesFresh(ctx, feedURL)
	if err != nil {
		return domain.FeedDocument{}, err
	}

	return s.document(plan.Kind, info, entries), nil
}

// FetchCategoriesWithFlags fetches several categories, consulting feature flags
// to choose between concurrent fan-out and one-at-a-time fetching
func (s *FeedService) FetchCategoriesWithFlags(ctx context.Context, categories []string) (map[string]domain.FeedDocument, error) {
	if featureflags.IsEnabled(ctx, featureflags.ConcurrentFetch) {
		return s.FetchCategories(ctx, categories)
	}

	if s.deps.Logger != nil {
		s.deps.Logger.Info("Fetching categories sequentially", map[string]interface{}{
			"categories": len(categories),
			"feature":    string(featureflags.ConcurrentFetch),
		})
	}

	docs := make(map[string]domain.FeedDocument, len(categories))
	for _, category := range categories {
		if err := ctx.Err(); err != nil {
			return docs, err
		}

		doc, err := s.FetchWithFlags(ctx, PlanFor(category))
		if err != nil {
			if s.deps.Logger != nil {
				s.deps.Logger.Error("Failed to fetch category", map[string]interface{}{
					"category": category,
					"error":    err.Error(),
				})
			}
			continue
		}
		docs[category] = doc
	}

	return docs, nil
}
