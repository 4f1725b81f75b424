package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/nflpredict/prediction-service/internal/models"
)

const espnBaseURL = "https://site.api.espn.com/apis/site/v2/sports/football/nfl"

// teamRef maps full team names onto ESPN's identifiers.
type teamRef struct {
	ID     string
	Abbrev string
}

var espnTeams = map[string]teamRef{
	"Arizona Cardinals":     {ID: "22", Abbrev: "ari"},
	"Atlanta Falcons":       {ID: "1", Abbrev: "atl"},
	"Baltimore Ravens":      {ID: "33", Abbrev: "bal"},
	"Buffalo Bills":         {ID: "2", Abbrev: "buf"},
	"Carolina Panthers":     {ID: "29", Abbrev: "car"},
	"Chicago Bears":         {ID: "3", Abbrev: "chi"},
	"Cincinnati Bengals":    {ID: "4", Abbrev: "cin"},
	"Cleveland Browns":      {ID: "5", Abbrev: "cle"},
	"Dallas Cowboys":        {ID: "6", Abbrev: "dal"},
	"Denver Broncos":        {ID: "7", Abbrev: "den"},
	"Detroit Lions":         {ID: "8", Abbrev: "det"},
	"Green Bay Packers":     {ID: "9", Abbrev: "gb"},
	"Houston Texans":        {ID: "34", Abbrev: "hou"},
	"Indianapolis Colts":    {ID: "11", Abbrev: "ind"},
	"Jacksonville Jaguars":  {ID: "30", Abbrev: "jax"},
	"Kansas City Chiefs":    {ID: "12", Abbrev: "kc"},
	"Las Vegas Raiders":     {ID: "13", Abbrev: "lv"},
	"Los Angeles Chargers":  {ID: "24", Abbrev: "lac"},
	"Los Angeles Rams":      {ID: "14", Abbrev: "lar"},
	"Miami Dolphins":        {ID: "15", Abbrev: "mia"},
	"Minnesota Vikings":     {ID: "16", Abbrev: "min"},
	"New England Patriots":  {ID: "17", Abbrev: "ne"},
	"New Orleans Saints":    {ID: "18", Abbrev: "no"},
	"New York Giants":       {ID: "19", Abbrev: "nyg"},
	"New York Jets":         {ID: "20", Abbrev: "nyj"},
	"Philadelphia Eagles":   {ID: "21", Abbrev: "phi"},
	"Pittsburgh Steelers":   {ID: "23", Abbrev: "pit"},
	"San Francisco 49ers":   {ID: "25", Abbrev: "sf"},
	"Seattle Seahawks":      {ID: "26", Abbrev: "sea"},
	"Tampa Bay Buccaneers":  {ID: "27", Abbrev: "tb"},
	"Tennessee Titans":      {ID: "10", Abbrev: "ten"},
	"Washington Commanders": {ID: "28", Abbrev: "wsh"},
}

// ESPNClient pulls team records and news from ESPN's public site API. It
// serves both the statistical and the sentiment agent.
type ESPNClient struct {
	httpClient  *http.Client
	logger      *logrus.Logger
	rateLimiter *rate.Limiter
	breaker     *gobreaker.CircuitBreaker
	baseURL     string
}

func NewESPNClient(timeout time.Duration, requestsPerMinute int, logger *logrus.Logger) *ESPNClient {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 30
	}
	return &ESPNClient{
		httpClient:  &http.Client{Timeout: timeout},
		logger:      logger,
		rateLimiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1),
		breaker:     newProviderBreaker("espn", logger),
		baseURL:     espnBaseURL,
	}
}

type espnTeamResponse struct {
	Team struct {
		DisplayName string `json:"displayName"`
		Record      struct {
			Items []espnRecordItem `json:"items"`
		} `json:"record"`
	} `json:"team"`
}

type espnRecordItem struct {
	Type  string `json:"type"`
	Stats []struct {
		Name  string  `json:"name"`
		Value float64 `json:"value"`
	} `json:"stats"`
}

type espnNewsResponse struct {
	Articles []struct {
		Headline    string `json:"headline"`
		Description string `json:"description"`
	} `json:"articles"`
}

// TeamStats implements agents.StatsProvider.
func (c *ESPNClient) TeamStats(ctx context.Context, team string) (*models.TeamStats, error) {
	ref, ok := espnTeams[team]
	if !ok {
		return nil, fmt.Errorf("unknown team %q", team)
	}
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		var payload espnTeamResponse
		if err := c.getJSON(ctx, fmt.Sprintf("%s/teams/%s", c.baseURL, ref.Abbrev), &payload); err != nil {
			return nil, err
		}
		return statsFromRecord(team, &payload), nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.TeamStats), nil
}

// TeamHeadlines implements agents.NewsProvider. Headlines are categorized
// and scored by keyword so the sentiment agent can aggregate them like its
// simulated scenarios.
func (c *ESPNClient) TeamHeadlines(ctx context.Context, team string) ([]models.Headline, error) {
	ref, ok := espnTeams[team]
	if !ok {
		return nil, fmt.Errorf("unknown team %q", team)
	}
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		var payload espnNewsResponse
		if err := c.getJSON(ctx, fmt.Sprintf("%s/news?limit=10&team=%s", c.baseURL, ref.ID), &payload); err != nil {
			return nil, err
		}

		headlines := make([]models.Headline, 0, len(payload.Articles))
		for _, article := range payload.Articles {
			category, impact := scoreHeadline(article.Headline + " " + article.Description)
			headlines = append(headlines, models.Headline{
				Title:    article.Headline,
				Category: category,
				Impact:   impact,
				Source:   models.SourceESPN,
			})
		}
		return headlines, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]models.Headline), nil
}

func (c *ESPNClient) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("espn request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("espn returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding espn response: %w", err)
	}
	return nil
}

// statsFromRecord flattens ESPN's record items into the statline shape.
// The overall item carries win percentage, point differential and streak;
// home and road items carry the splits.
func statsFromRecord(team string, payload *espnTeamResponse) *models.TeamStats {
	stats := &models.TeamStats{
		Team:               team,
		StrengthOfSchedule: 0.5,
		Source:             models.SourceESPN,
		LastUpdated:        time.Now(),
	}

	for _, item := range payload.Team.Record.Items {
		values := make(map[string]float64, len(item.Stats))
		for _, s := range item.Stats {
			values[s.Name] = s.Value
		}

		switch item.Type {
		case "total":
			stats.WinRate = values["winPercent"]
			if games := values["wins"] + values["losses"] + values["ties"]; games > 0 {
				stats.PointDifferential = values["differential"] / games
			}
			stats.PointsPerGame = values["avgPointsFor"]
			stats.PointsAllowedPerGame = values["avgPointsAgainst"]
			stats.RecentForm = formFromStreak(values["streak"])
		case "home":
			stats.HomeWinRate = values["winPercent"]
		case "road":
			stats.AwayWinRate = values["winPercent"]
		}
	}

	if stats.HomeWinRate == 0 {
		stats.HomeWinRate = stats.WinRate
	}
	if stats.AwayWinRate == 0 {
		stats.AwayWinRate = stats.WinRate
	}
	return stats
}

// formFromStreak reconstructs the last four results from the current
// streak. A three-game win streak reads 1,1,1,0; anything longer caps at
// four.
func formFromStreak(streak float64) []int {
	form := make([]int, 4)
	n := int(streak)
	if n > 4 {
		n = 4
	}
	for i := 0; i < n; i++ {
		form[i] = 1
	}
	return form
}

// Keyword buckets for headline scoring, checked in order. The first match
// wins; magnitudes mirror the simulated scenario library.
var headlineRules = []struct {
	category string
	impact   float64
	keywords []string
}{
	{"injuries", -0.09, []string{"injury", "injured", "out for", "questionable", "doubtful", "ir ", "surgery"}},
	{"injuries", 0.08, []string{"returns", "activated", "cleared", "healthy"}},
	{"coaching", -0.11, []string{"fired", "hot seat", "job security", "interim"}},
	{"coaching", 0.07, []string{"coach of", "extension", "play-calling"}},
	{"team_chemistry", -0.10, []string{"argument", "dispute", "locker room issue", "benched", "trade request"}},
	{"momentum", 0.06, []string{"winning streak", "dominant", "rolling", "clinch"}},
	{"momentum", -0.08, []string{"losing streak", "skid", "blown lead", "collapse"}},
	{"motivation", 0.05, []string{"playoff", "revenge", "must-win"}},
}

func scoreHeadline(text string) (string, float64) {
	lowered := strings.ToLower(text)
	for _, rule := range headlineRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lowered, keyword) {
				return rule.category, rule.impact
			}
		}
	}
	return "momentum", 0.02
}
