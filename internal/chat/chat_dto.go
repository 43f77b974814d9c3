package chat

type ChatRequest struct {
	Message string `json:"message" binding:"required,max=2000"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}
