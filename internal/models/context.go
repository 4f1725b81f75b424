package models

import "time"

// Data source markers recorded on every piece of collected context so the
// rest of the pipeline stays agnostic to provenance.
const (
	SourceSimulated = "simulated"
	SourceOpenMeteo = "open-meteo"
	SourceESPN      = "espn"
	SourceDome      = "dome"
)

// WeatherReading is a snapshot of venue conditions at game time.
type WeatherReading struct {
	Venue         string  `json:"venue"`
	IsDome        bool    `json:"is_dome"`
	Temperature   float64 `json:"temperature"`
	FeelsLike     float64 `json:"feels_like"`
	Conditions    string  `json:"conditions"`
	WindSpeed     float64 `json:"wind_speed"`
	WindGust      float64 `json:"wind_gust"`
	Precipitation float64 `json:"precipitation"`
	Humidity      int     `json:"humidity"`
	Source        string  `json:"source"`
}

// TeamStats is a season statline for one side.
type TeamStats struct {
	Team                 string    `json:"team"`
	WinRate              float64   `json:"win_rate"`
	PointDifferential    float64   `json:"point_differential"`
	RecentForm           []int     `json:"recent_form"` // 1 = win, last 4 games
	HomeWinRate          float64   `json:"home_win_rate"`
	AwayWinRate          float64   `json:"away_win_rate"`
	StrengthOfSchedule   float64   `json:"strength_of_schedule"`
	PointsPerGame        float64   `json:"points_per_game"`
	PointsAllowedPerGame float64   `json:"points_allowed_per_game"`
	Source               string    `json:"source"`
	LastUpdated          time.Time `json:"last_updated"`
}

// InjuryReport summarizes availability concerns for one side.
type InjuryReport struct {
	Team           string   `json:"team"`
	KeyPlayersOut  int      `json:"key_players_out"`
	Questionable   int      `json:"questionable"`
	ImpactEstimate float64  `json:"impact_estimate"` // negative hurts the team
	Notes          []string `json:"notes,omitempty"`
	Source         string   `json:"source"`
}

// HistoricalMatchup captures the recent head-to-head series.
type HistoricalMatchup struct {
	HomeWins   int     `json:"home_wins"`
	AwayWins   int     `json:"away_wins"`
	AvgMargin  float64 `json:"avg_margin"`
	LastWinner string  `json:"last_winner,omitempty"`
	Source     string  `json:"source"`
}

// Headline is a single categorized news item for sentiment scoring.
type Headline struct {
	Title    string  `json:"title"`
	Category string  `json:"category"` // chemistry, coaching, injuries, momentum, motivation
	Impact   float64 `json:"impact"`   // signed, scaled to [-0.15, 0.15]
	Source   string  `json:"source"`
}

// GameContext is the opaque bundle produced by the context collector.
// Every field may be nil or zero: agents read defensively and absence of a
// field degrades signal quality, never errors.
type GameContext struct {
	Weather        *WeatherReading    `json:"weather,omitempty"`
	HomeStats      *TeamStats         `json:"home_team_stats,omitempty"`
	AwayStats      *TeamStats         `json:"away_team_stats,omitempty"`
	HomeInjuries   *InjuryReport      `json:"home_injuries,omitempty"`
	AwayInjuries   *InjuryReport      `json:"away_injuries,omitempty"`
	Historical     *HistoricalMatchup `json:"historical_matchup,omitempty"`
	HomeHeadlines  []Headline         `json:"home_headlines,omitempty"`
	AwayHeadlines  []Headline         `json:"away_headlines,omitempty"`
	CollectionTime time.Time          `json:"collection_time"`
	DataQuality    string             `json:"data_quality"` // "live", "partial" or "simulated"
}
