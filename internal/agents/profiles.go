package agents

// Static per-team profile tables. These are hand-tuned content data, not
// algorithmic behavior; teams absent from a table fall back to neutral
// defaults.

// weatherProfile describes how a team performs in particular conditions.
// Positive values help, negative hurt.
type weatherProfile struct {
	ColdAdvantage     float64
	SnowAdvantage     float64
	HeatAdvantage     float64
	HeatPenalty       float64
	ColdPenalty       float64
	WindAdvantage     float64
	RainAdvantage     float64
	HumidityAdvantage float64
	AllWeather        float64
	DomeHome          float64
	OutdoorPenalty    float64
}

var teamWeatherProfiles = map[string]weatherProfile{
	"Buffalo Bills":        {ColdAdvantage: 0.15, SnowAdvantage: 0.12, HeatPenalty: -0.10},
	"Miami Dolphins":       {HeatAdvantage: 0.12, ColdPenalty: -0.15, HumidityAdvantage: 0.08},
	"Green Bay Packers":    {ColdAdvantage: 0.18, WindAdvantage: 0.10},
	"Kansas City Chiefs":   {ColdAdvantage: 0.12, WindAdvantage: 0.10, AllWeather: 0.08},
	"Chicago Bears":        {WindAdvantage: 0.15, ColdAdvantage: 0.12},
	"Seattle Seahawks":     {RainAdvantage: 0.10},
	"New England Patriots": {ColdAdvantage: 0.10, WindAdvantage: 0.08, AllWeather: 0.06},
	"Detroit Lions":        {DomeHome: 0.08, OutdoorPenalty: -0.10},
	"New Orleans Saints":   {DomeHome: 0.08, OutdoorPenalty: -0.12, HumidityAdvantage: 0.06},
	"Dallas Cowboys":       {DomeHome: 0.08, OutdoorPenalty: -0.06},
}

// narrativeProfile shapes which simulated news a team tends to draw.
type narrativeProfile struct {
	Stability           float64
	MediaAttention      float64
	ExpectationPressure float64
}

var defaultNarrative = narrativeProfile{Stability: 0.6, MediaAttention: 0.6, ExpectationPressure: 0.6}

var teamNarratives = map[string]narrativeProfile{
	"Kansas City Chiefs":    {Stability: 0.8, MediaAttention: 0.9, ExpectationPressure: 0.9},
	"Buffalo Bills":         {Stability: 0.7, MediaAttention: 0.7, ExpectationPressure: 0.8},
	"New England Patriots":  {Stability: 0.6, MediaAttention: 0.8, ExpectationPressure: 0.7},
	"Dallas Cowboys":        {Stability: 0.5, MediaAttention: 1.0, ExpectationPressure: 0.9},
	"Green Bay Packers":     {Stability: 0.7, MediaAttention: 0.6, ExpectationPressure: 0.7},
	"San Francisco 49ers":   {Stability: 0.6, MediaAttention: 0.7, ExpectationPressure: 0.8},
	"Baltimore Ravens":      {Stability: 0.7, MediaAttention: 0.6, ExpectationPressure: 0.7},
	"Pittsburgh Steelers":   {Stability: 0.8, MediaAttention: 0.7, ExpectationPressure: 0.6},
	"Cincinnati Bengals":    {Stability: 0.6, MediaAttention: 0.6, ExpectationPressure: 0.7},
	"Cleveland Browns":      {Stability: 0.5, MediaAttention: 0.8, ExpectationPressure: 0.6},
	"Tennessee Titans":      {Stability: 0.6, MediaAttention: 0.4, ExpectationPressure: 0.5},
	"Indianapolis Colts":    {Stability: 0.6, MediaAttention: 0.5, ExpectationPressure: 0.6},
	"Houston Texans":        {Stability: 0.7, MediaAttention: 0.5, ExpectationPressure: 0.6},
	"Jacksonville Jaguars":  {Stability: 0.5, MediaAttention: 0.4, ExpectationPressure: 0.5},
	"Denver Broncos":        {Stability: 0.6, MediaAttention: 0.6, ExpectationPressure: 0.6},
	"Los Angeles Chargers":  {Stability: 0.6, MediaAttention: 0.5, ExpectationPressure: 0.7},
	"Las Vegas Raiders":     {Stability: 0.4, MediaAttention: 0.7, ExpectationPressure: 0.5},
	"Miami Dolphins":        {Stability: 0.6, MediaAttention: 0.6, ExpectationPressure: 0.6},
	"New York Jets":         {Stability: 0.4, MediaAttention: 0.8, ExpectationPressure: 0.6},
	"Philadelphia Eagles":   {Stability: 0.7, MediaAttention: 0.7, ExpectationPressure: 0.8},
	"New York Giants":       {Stability: 0.5, MediaAttention: 0.8, ExpectationPressure: 0.5},
	"Washington Commanders": {Stability: 0.5, MediaAttention: 0.6, ExpectationPressure: 0.5},
	"Detroit Lions":         {Stability: 0.7, MediaAttention: 0.6, ExpectationPressure: 0.7},
	"Chicago Bears":         {Stability: 0.5, MediaAttention: 0.6, ExpectationPressure: 0.5},
	"Minnesota Vikings":     {Stability: 0.6, MediaAttention: 0.5, ExpectationPressure: 0.6},
	"New Orleans Saints":    {Stability: 0.6, MediaAttention: 0.5, ExpectationPressure: 0.6},
	"Atlanta Falcons":       {Stability: 0.6, MediaAttention: 0.5, ExpectationPressure: 0.6},
	"Carolina Panthers":     {Stability: 0.5, MediaAttention: 0.4, ExpectationPressure: 0.4},
	"Tampa Bay Buccaneers":  {Stability: 0.7, MediaAttention: 0.6, ExpectationPressure: 0.7},
	"Los Angeles Rams":      {Stability: 0.6, MediaAttention: 0.7, ExpectationPressure: 0.7},
	"Arizona Cardinals":     {Stability: 0.5, MediaAttention: 0.4, ExpectationPressure: 0.5},
	"Seattle Seahawks":      {Stability: 0.7, MediaAttention: 0.6, ExpectationPressure: 0.6},
}

// marketProfile shapes simulated betting behavior around a team.
type marketProfile struct {
	PublicPopularity float64
	MediaAttention   float64
	SharpRespect     float64
}

var defaultMarketProfile = marketProfile{PublicPopularity: 0.5, MediaAttention: 0.5, SharpRespect: 0.5}

var teamMarketProfiles = map[string]marketProfile{
	"Dallas Cowboys":       {PublicPopularity: 0.9, MediaAttention: 1.0, SharpRespect: 0.6},
	"Kansas City Chiefs":   {PublicPopularity: 0.85, MediaAttention: 0.9, SharpRespect: 0.9},
	"New England Patriots": {PublicPopularity: 0.8, MediaAttention: 0.8, SharpRespect: 0.7},
	"Green Bay Packers":    {PublicPopularity: 0.75, MediaAttention: 0.7, SharpRespect: 0.8},
	"San Francisco 49ers":  {PublicPopularity: 0.7, MediaAttention: 0.75, SharpRespect: 0.85},
	"Buffalo Bills":        {PublicPopularity: 0.6, MediaAttention: 0.6, SharpRespect: 0.8},
	"Baltimore Ravens":     {PublicPopularity: 0.65, MediaAttention: 0.6, SharpRespect: 0.85},
	"Pittsburgh Steelers":  {PublicPopularity: 0.8, MediaAttention: 0.7, SharpRespect: 0.7},
}

// sportsbook characteristics for cross-book line simulation. Sharp books
// keep tighter lines.
type sportsbookProfile struct {
	Reputation string // "sharp", "recreational", "mixed"
}

var sportsbooks = map[string]sportsbookProfile{
	"pinnacle":   {Reputation: "sharp"},
	"draftkings": {Reputation: "recreational"},
	"fanduel":    {Reputation: "recreational"},
	"caesars":    {Reputation: "mixed"},
	"betmgm":     {Reputation: "mixed"},
}

// newsScenario is one entry of the simulated news library used when live
// headlines are unavailable.
type newsScenario struct {
	Kind     string // "positive", "negative", "neutral"
	Impact   float64
	Headline string
}

var newsScenarios = map[string][]newsScenario{
	"team_chemistry": {
		{Kind: "positive", Impact: 0.08, Headline: "Locker room unity at season high after team bonding event"},
		{Kind: "positive", Impact: 0.06, Headline: "Veterans praise rookie leadership and team cohesion"},
		{Kind: "negative", Impact: -0.10, Headline: "Reports of heated argument between star players"},
		{Kind: "negative", Impact: -0.12, Headline: "Anonymous player criticizes coaching decisions"},
		{Kind: "neutral", Impact: 0.02, Headline: "Team maintains professional atmosphere"},
	},
	"coaching": {
		{Kind: "positive", Impact: 0.09, Headline: "Coach wins NFL Coach of Month award"},
		{Kind: "positive", Impact: 0.07, Headline: "Innovative play-calling receives league recognition"},
		{Kind: "negative", Impact: -0.11, Headline: "Coach's job security questioned after recent losses"},
		{Kind: "negative", Impact: -0.15, Headline: "Rumored friction between coach and front office"},
		{Kind: "neutral", Impact: 0.01, Headline: "Coach maintains steady approach"},
	},
	"injuries": {
		{Kind: "positive", Impact: 0.08, Headline: "Star player returns ahead of schedule from injury"},
		{Kind: "positive", Impact: 0.05, Headline: "Key players clear concussion protocol"},
		{Kind: "negative", Impact: -0.09, Headline: "Starting quarterback dealing with nagging injury"},
		{Kind: "negative", Impact: -0.07, Headline: "Multiple starters listed as questionable"},
		{Kind: "neutral", Impact: -0.02, Headline: "Injury report shows typical wear and tear"},
	},
	"momentum": {
		{Kind: "positive", Impact: 0.06, Headline: "Team riding 4-game winning streak with confidence high"},
		{Kind: "positive", Impact: 0.04, Headline: "Recent dominant performance boosts team morale"},
		{Kind: "negative", Impact: -0.08, Headline: "Team struggling after blowing late leads in consecutive games"},
		{Kind: "negative", Impact: -0.06, Headline: "Offense sputters in red zone for third straight week"},
		{Kind: "neutral", Impact: 0.01, Headline: "Team maintains even keel despite ups and downs"},
	},
	"motivation": {
		{Kind: "positive", Impact: 0.05, Headline: "Playoff implications add extra motivation for crucial game"},
		{Kind: "positive", Impact: 0.04, Headline: "Revenge game against former coach sparks team energy"},
		{Kind: "negative", Impact: -0.05, Headline: "Nothing to play for with playoff hopes eliminated"},
		{Kind: "negative", Impact: -0.03, Headline: "Letdown spot after emotional victory last week"},
		{Kind: "neutral", Impact: 0.00, Headline: "Standard preparation for upcoming opponent"},
	},
}

// sentimentCategories lists the scored news categories in a fixed order so
// simulated profiles are reproducible under an injected RNG.
var sentimentCategories = []string{"team_chemistry", "coaching", "injuries", "momentum", "motivation"}
