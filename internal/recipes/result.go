package recipes

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"fridgechef/internal/api"
)

type Status int

const (
	StatusLoading Status = iota
	StatusError
	StatusReady
)

type ErrorKind int

const (
	ErrorGeneric ErrorKind = iota
	ErrorNotFound
)

// View is the result page state: exactly one of loading, error, or ready is
// representable at a time.
type View struct {
	Status  Status
	ErrKind ErrorKind
	Message string

	Data *api.Recommendation
	// Images holds one resolved URL slot per recipe, nil when none could be
	// found. Backend-supplied URLs and batch-resolved ones land here alike.
	Images []*string
	Likes  map[int]int

	// ExpandedIdx is the recipe open by default; the first one.
	ExpandedIdx int
}

type Loader struct {
	client *api.Client
}

func NewLoader(client *api.Client) *Loader {
	return &Loader{client: client}
}

// Load fetches the recommendation and its like stats concurrently, then runs
// the secondary image stage for recipes lacking a backend image. Only the
// recommendation fetch can fail the page; everything else degrades silently.
func (l *Loader) Load(ctx context.Context, id string) View {
	var (
		rec   *api.Recommendation
		stats api.RecommendationLikeStats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rec, err = l.client.GetRecommendation(gctx, id)
		return err
	})
	g.Go(func() error {
		stats = l.client.GetRecipeLikeStats(gctx, id)
		return nil
	})
	if err := g.Wait(); err != nil {
		kind := ErrorGeneric
		if errors.Is(err, api.ErrNotFound) {
			kind = ErrorNotFound
		}
		return View{Status: StatusError, ErrKind: kind, Message: err.Error()}
	}

	likes := make(map[int]int, len(stats.Recipes))
	for _, r := range stats.Recipes {
		likes[r.RecipeIndex] = r.LikeCount
	}

	return View{
		Status: StatusReady,
		Data:   rec,
		Images: l.loadImages(ctx, rec),
		Likes:  likes,
	}
}

// loadImages resolves every recipe's image slot. Missing images fire one
// batched request for all absent titles; the batch fills every requested
// slot at once or leaves them nil on failure.
func (l *Loader) loadImages(ctx context.Context, rec *api.Recommendation) []*string {
	images := make([]*string, len(rec.Recipes))
	var missing []string
	for i, r := range rec.Recipes {
		images[i] = l.client.ResolveImageURL(r.ImageURL)
		if r.ImageURL == nil || *r.ImageURL == "" {
			missing = append(missing, r.Title)
		}
	}
	if len(missing) == 0 {
		return images
	}

	results := l.client.GetRecipeImages(ctx, missing, rec.ID)
	byTitle := make(map[string]*string, len(results))
	for _, r := range results {
		byTitle[r.Title] = l.client.ResolveImageURL(r.ImageURL)
	}
	for i, r := range rec.Recipes {
		if images[i] == nil {
			images[i] = byTitle[r.Title]
		}
	}
	return images
}

// LikeFor returns the like count for a recipe index, zero when unknown.
func (v *View) LikeFor(recipeIndex int) int {
	return v.Likes[recipeIndex]
}
