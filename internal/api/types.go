package api

// Wire types for the versioned recommendation backend.

type User struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Nickname  *string `json:"nickname"`
	CreatedAt string  `json:"created_at"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type Constraints struct {
	TimeLimitMin int      `json:"time_limit_min"`
	Servings     int      `json:"servings"`
	Tools        []string `json:"tools"`
	Exclude      []string `json:"exclude"`
}

type RecommendationCreate struct {
	Ingredients []string    `json:"ingredients"`
	Constraints Constraints `json:"constraints"`
}

type Recipe struct {
	Title            string   `json:"title"`
	TimeMin          int      `json:"time_min"`
	Servings         int      `json:"servings"`
	Summary          string   `json:"summary"`
	ImageURL         *string  `json:"image_url"`
	IngredientsTotal []string `json:"ingredients_total"`
	IngredientsHave  []string `json:"ingredients_have"`
	IngredientsNeed  []string `json:"ingredients_need"`
	Steps            []string `json:"steps"`
	Tips             []string `json:"tips"`
	Warnings         []string `json:"warnings"`
}

type ShoppingItem struct {
	Item        string   `json:"item"`
	Qty         *float64 `json:"qty"`
	Unit        *string  `json:"unit"`
	Category    *string  `json:"category"`
	PurchaseURL *string  `json:"purchase_url"`
}

type Recommendation struct {
	ID           string         `json:"id"`
	CreatedAt    string         `json:"created_at"`
	Recipes      []Recipe       `json:"recipes"`
	ShoppingList []ShoppingItem `json:"shopping_list"`
}

// CreateResult pairs a fresh recommendation with the anonymous quota hint
// the backend attaches via the X-Daily-Remaining header. Nil for logged-in
// callers.
type CreateResult struct {
	Recommendation
	DailyRemaining *int
}

type Favorite struct {
	ID               string  `json:"id"`
	RecommendationID string  `json:"recommendation_id"`
	RecipeIndex      int     `json:"recipe_index"`
	RecipeTitle      string  `json:"recipe_title"`
	RecipeImageURL   *string `json:"recipe_image_url"`
	CreatedAt        string  `json:"created_at"`
}

type FavoriteCheck struct {
	IsFavorite bool    `json:"is_favorite"`
	FavoriteID *string `json:"favorite_id"`
}

type RecipeLikeCount struct {
	RecipeIndex int `json:"recipe_index"`
	LikeCount   int `json:"like_count"`
}

type RecommendationLikeStats struct {
	RecommendationID string            `json:"recommendation_id"`
	Recipes          []RecipeLikeCount `json:"recipes"`
}

type SearchHistory struct {
	ID               string    `json:"id"`
	RecommendationID string    `json:"recommendation_id"`
	Ingredients      []string  `json:"ingredients"`
	TimeLimitMin     int       `json:"time_limit_min"`
	Servings         int       `json:"servings"`
	RecipeTitles     []string  `json:"recipe_titles"`
	RecipeImages     []*string `json:"recipe_images"`
	SearchedAt       string    `json:"searched_at"`
}

type BatchImageResult struct {
	Title    string  `json:"title"`
	ImageURL *string `json:"image_url"`
}

type Stats struct {
	TotalRecipesGenerated int `json:"total_recipes_generated"`
	TotalUsers            int `json:"total_users"`
}
