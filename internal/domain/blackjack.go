package domain

// GameStatus is the blackjack turn state.
type GameStatus string

const (
	GameStatusPlaying  GameStatus = "playing"
	GameStatusFinished GameStatus = "finished"
)

// GameOutcome describes how a finished hand resolved.
type GameOutcome string

const (
	OutcomeNone          GameOutcome = ""
	OutcomeBlackjack     GameOutcome = "blackjack"
	OutcomePlayerWin     GameOutcome = "player_win"
	OutcomeDealerBust    GameOutcome = "dealer_bust"
	OutcomePush          GameOutcome = "push"
	OutcomeDealerWin     GameOutcome = "dealer_win"
	OutcomePlayerBust    GameOutcome = "player_bust"
	OutcomeDealerNatural GameOutcome = "dealer_blackjack"
)

// GameSession is the full blackjack state. It is only ever held by the client in signed form.
type GameSession struct {
	Deck    []Card      `json:"deck"`
	Player  []Card      `json:"player"`
	Dealer  []Card      `json:"dealer"`
	Bet     int64       `json:"bet"`
	Status  GameStatus  `json:"status"`
	Outcome GameOutcome `json:"outcome,omitempty"`
	Payout  int64       `json:"payout,omitempty"`
}

// GameView is what the player sees. The dealer hole card is hidden while playing.
type GameView struct {
	Player      []Card      `json:"player"`
	Dealer      []Card      `json:"dealer"`
	PlayerScore int         `json:"player_score"`
	DealerScore int         `json:"dealer_score"`
	Bet         int64       `json:"bet"`
	Status      GameStatus  `json:"status"`
	Outcome     GameOutcome `json:"outcome,omitempty"`
	Payout      int64       `json:"payout"`
	Balance     int64       `json:"balance"`
	Message     string      `json:"message"`
}
