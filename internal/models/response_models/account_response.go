package response_models

type AccountLoginResponse struct {
	Token   string `json:"token"`
	Role    string `json:"role"`
	Level   int    `json:"level"`
	Credits int    `json:"credits"`
}

type AccountResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Level   int    `json:"level"`
	Credits int    `json:"credits"`
}

type CreditEntry struct {
	Delta     int    `json:"delta"`
	Reason    string `json:"reason"`
	ReviewID  string `json:"review_id,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

type CreditHistoryResponse struct {
	Balance int           `json:"balance"`
	Level   int           `json:"level"`
	Entries []CreditEntry `json:"entries"`
}
