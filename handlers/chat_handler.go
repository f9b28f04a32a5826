package handlers

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/kiyuzo/shop-tcg/config"

	"github.com/gofiber/fiber/v2"
)

const groqEndpoint = "https://api.groq.com/openai/v1/chat/completions"

const chatSystemPrompt = `You are a helpful assistant for a Trading Card Game (TCG) e-commerce store called "KON".
You specialize in helping customers with:
- Finding specific trading cards (Pokemon, Yu-Gi-Oh!, Magic: The Gathering, One Piece)
- Explaining card conditions (Mint, Near Mint, Lightly Played, etc.)
- Answering questions about card rarity and value
- Helping with orders and shipping
- Providing general TCG knowledge

Be friendly, concise, and helpful. If asked about specific products, mention that users can browse the products page.
Keep responses under 150 words unless more detail is specifically requested.`

const chatFallbackMessage = "I'm currently experiencing technical difficulties. Please try again later."

// ChatHandler proxies the storefront chat widget to an OpenAI-compatible LLM
// endpoint. It never surfaces upstream failures as errors: the widget always
// gets a message to display.
type ChatHandler struct {
	APIKey   string
	Model    string
	Endpoint string
	Client   *http.Client
}

func NewChatHandler(cfg *config.Config) *ChatHandler {
	return &ChatHandler{
		APIKey:   cfg.GroqAPIKey,
		Model:    cfg.GroqModel,
		Endpoint: groqEndpoint,
		Client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// ChatMessage is one turn of the conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
}

type completionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
}

// Chat - POST /api/chat
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}
	if len(req.Messages) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "No messages provided"})
	}

	if h.APIKey == "" {
		return c.JSON(fiber.Map{"message": "AI chatbot is currently unavailable. Please check back later."})
	}

	payload := completionRequest{
		Model:       h.Model,
		Messages:    append([]ChatMessage{{Role: "system", Content: chatSystemPrompt}}, req.Messages...),
		Temperature: 0.7,
		MaxTokens:   500,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return c.JSON(fiber.Map{"message": chatFallbackMessage})
	}

	httpReq, err := http.NewRequest(http.MethodPost, h.Endpoint, bytes.NewReader(body))
	if err != nil {
		return c.JSON(fiber.Map{"message": chatFallbackMessage})
	}
	httpReq.Header.Set("Authorization", "Bearer "+h.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := h.Client.Do(httpReq)
	if err != nil {
		log.Printf("chat: upstream request failed: %v", err)
		return c.JSON(fiber.Map{"message": chatFallbackMessage})
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("chat: upstream returned status %d", resp.StatusCode)
		return c.JSON(fiber.Map{"message": "I apologize, but I'm having trouble connecting right now. Please try again in a moment."})
	}

	var completion completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil || len(completion.Choices) == 0 {
		return c.JSON(fiber.Map{"message": "Sorry, I could not generate a response."})
	}

	return c.JSON(fiber.Map{"message": completion.Choices[0].Message.Content})
}
