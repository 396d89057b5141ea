package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/aadijha14/NutritionApp/models"
)

// NutritionClient resolves a free-text food description ("1 bowl chicken
// rice") into macros, so logging a meal does not depend on the client
// knowing calorie counts.
type NutritionClient interface {
	LookupFood(ctx context.Context, query string) (models.MenuItem, error)
}

// EdamamService calls the Edamam nutrition-data API.
type EdamamService struct {
	client  *http.Client
	baseURL string
	appID   string
	appKey  string
}

func NewEdamamService() *EdamamService {
	base := os.Getenv("EDAMAM_BASE_URL")
	if base == "" {
		base = "https://api.edamam.com"
	}
	return &EdamamService{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(base, "/"),
		appID:   os.Getenv("EDAMAM_APP_ID"),
		appKey:  os.Getenv("EDAMAM_APP_KEY"),
	}
}

type nutritionDataResponse struct {
	Calories       float64 `json:"calories"`
	TotalNutrients map[string]struct {
		Quantity float64 `json:"quantity"`
	} `json:"totalNutrients"`
	Ingredients []struct {
		Parsed []struct {
			Food string `json:"food"`
		} `json:"parsed"`
	} `json:"ingredients"`
}

func (s *EdamamService) LookupFood(ctx context.Context, query string) (models.MenuItem, error) {
	if s.appID == "" || s.appKey == "" {
		return models.MenuItem{}, fmt.Errorf("EDAMAM_APP_ID / EDAMAM_APP_KEY not set")
	}

	u := fmt.Sprintf("%s/api/nutrition-data?app_id=%s&app_key=%s&nutrition-type=logging&ingr=%s",
		s.baseURL, url.QueryEscape(s.appID), url.QueryEscape(s.appKey), url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return models.MenuItem{}, fmt.Errorf("building nutrition request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return models.MenuItem{}, fmt.Errorf("calling nutrition API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.MenuItem{}, fmt.Errorf("reading nutrition response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		preview := string(body)
		if len(preview) > 200 {
			preview = preview[:200]
		}
		return models.MenuItem{}, fmt.Errorf("nutrition API error %d: %s", resp.StatusCode, preview)
	}

	var nr nutritionDataResponse
	if err := json.Unmarshal(body, &nr); err != nil {
		return models.MenuItem{}, fmt.Errorf("parsing nutrition JSON: %w", err)
	}
	// zero calories means Edamam could not parse the ingredient
	if nr.Calories <= 0 {
		return models.MenuItem{}, fmt.Errorf("no nutrition data found for %q", query)
	}

	name := query
	if len(nr.Ingredients) > 0 && len(nr.Ingredients[0].Parsed) > 0 && nr.Ingredients[0].Parsed[0].Food != "" {
		name = nr.Ingredients[0].Parsed[0].Food
	}
	grams := func(key string) int {
		return int(math.Round(nr.TotalNutrients[key].Quantity))
	}
	return models.MenuItem{
		FoodName: name,
		Calories: int(math.Round(nr.Calories)),
		Protein:  grams("PROCNT"),
		Carbs:    grams("CHOCDF"),
		Fat:      grams("FAT"),
	}, nil
}
