package models

import "time"

// Game is a single scheduled matchup. Immutable once loaded.
type Game struct {
	GameID     uint      `gorm:"primaryKey;column:game_id" json:"game_id"`
	Season     int       `gorm:"index" json:"season"`
	Week       int       `gorm:"index" json:"week"`
	GameDate   time.Time `json:"game_date"`
	HomeTeam   string    `json:"home_team"`
	AwayTeam   string    `json:"away_team"`
	Venue      string    `json:"venue"`
	IsDome     bool      `json:"is_dome"`
	GameStatus string    `json:"game_status"`
}

func (Game) TableName() string {
	return "games"
}

// PlayoffGame is a bracket entry. Seeds are optional: play-in or
// neutral-site games may not carry them.
type PlayoffGame struct {
	GameID          uint      `gorm:"primaryKey;column:game_id" json:"game_id"`
	Season          int       `gorm:"index" json:"season"`
	Round           string    `gorm:"index" json:"round"`
	HomeTeam        string    `json:"home_team"`
	AwayTeam        string    `json:"away_team"`
	HomeSeed        *int      `json:"home_seed,omitempty"`
	AwaySeed        *int      `json:"away_seed,omitempty"`
	Bracket         string    `json:"bracket,omitempty"`
	BracketPosition string    `json:"bracket_position,omitempty"`
	GameDate        time.Time `json:"game_date"`
	Venue           string    `json:"venue"`
	IsDome          bool      `json:"is_dome"`
}

func (PlayoffGame) TableName() string {
	return "playoff_games"
}

// Matchup is the prediction pipeline's input shape, decoupled from the
// persistence schema.
type Matchup struct {
	GameID   uint      `json:"game_id"`
	HomeTeam string    `json:"home_team_name" binding:"required"`
	AwayTeam string    `json:"away_team_name" binding:"required"`
	GameTime time.Time `json:"game_time"`
	Venue    string    `json:"venue"`
	IsDome   bool      `json:"is_dome"`
}
