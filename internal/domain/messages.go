package domain

type ClientMessage struct {
	Type         string `json:"type"`
	JWT          string `json:"jwt,omitempty"`
	GameID       string `json:"gameId,omitempty"`
	AIMovesFirst bool   `json:"aiMovesFirst,omitempty"`
	Row          int    `json:"row"`
	Col          int    `json:"col"`
}

type ServerMessage struct {
	Type        string     `json:"type"`
	Message     string     `json:"message,omitempty"`
	GameID      string     `json:"gameId,omitempty"`
	YourMarker  Marker     `json:"yourMarker,omitempty"`
	Row         *int       `json:"row,omitempty"`
	Col         *int       `json:"col,omitempty"`
	Marker      Marker     `json:"marker,omitempty"`
	Board       *Board     `json:"board,omitempty"`
	CurrentTurn Marker     `json:"currentTurn,omitempty"`
	Winner      Marker     `json:"winner,omitempty"`
	Reason      string     `json:"reason,omitempty"`
	Status      GameStatus `json:"status,omitempty"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
