package handlers

import (
	"context"
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/aryanpatel3011/localseva_be/internal/chat"
	"github.com/aryanpatel3011/localseva_be/internal/models"
	"github.com/aryanpatel3011/localseva_be/internal/realtime"
)

type ChatHandler struct {
	DB       *gorm.DB
	Hub      *realtime.Hub
	RDB      *redis.Client
	Sanitize *bluemonday.Policy
}

func NewChatHandler(db *gorm.DB, hub *realtime.Hub, rdb *redis.Client) *ChatHandler {
	return &ChatHandler{DB: db, Hub: hub, RDB: rdb, Sanitize: bluemonday.StrictPolicy()}
}

// GetConversations derives the conversation list from the message set.
// The sent and received feeds are fetched separately and folded by
// internal/chat; nothing is persisted per conversation.
func (h *ChatHandler) GetConversations(c *fiber.Ctx) error {
	userUUID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}

	var sent, received []models.Message
	if err := h.DB.
		Where("sender_id = ?", userUUID).
		Order("created_at DESC").
		Find(&sent).Error; err != nil {

		log.Println("Error fetching sent messages:", err)
		return fail500(c, "Failed to fetch conversations")
	}
	if err := h.DB.
		Where("receiver_id = ?", userUUID).
		Order("created_at DESC").
		Find(&received).Error; err != nil {

		log.Println("Error fetching received messages:", err)
		return fail500(c, "Failed to fetch conversations")
	}

	convs := chat.Aggregate(sent, received)

	return c.JSON(fiber.Map{
		"success": true,
		"data":    convs,
	})
}

// GetTranscript returns the full message history for one
// (provider, service) key the caller participates in, oldest first.
func (h *ChatHandler) GetTranscript(c *fiber.Ctx) error {
	userUUID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}

	providerID, err := uuid.Parse(c.Query("provider_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid provider ID",
		})
	}
	serviceID, err := uuid.Parse(c.Query("service_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid service ID",
		})
	}

	var messages []models.Message
	if err := h.DB.
		Where("provider_id = ? AND service_id = ?", providerID, serviceID).
		Where("sender_id = ? OR receiver_id = ?", userUUID, userUUID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {

		log.Println("Error fetching messages:", err)
		return fail500(c, "Failed to fetch messages")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    messages,
	})
}

type SendMessageReq struct {
	ReceiverID string `json:"receiver_id"`
	ProviderID string `json:"provider_id"`
	ServiceID  string `json:"service_id"`
	Body       string `json:"body"`
}

// SendMessage creates an immutable message, fans it out over the hub and
// pushes a redis notification to the receiver.
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	userUUID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}

	var req SendMessageReq
	if err := c.BodyParser(&req); err != nil || req.Body == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Message body is required",
		})
	}

	receiverID, err := uuid.Parse(req.ReceiverID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid receiver ID",
		})
	}
	providerID, err := uuid.Parse(req.ProviderID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid provider ID",
		})
	}
	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid service ID",
		})
	}

	// the conversation key must reference one of the two participants
	if providerID != userUUID && providerID != receiverID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "Access denied",
		})
	}

	var svc models.Service
	if err := h.DB.First(&svc, "id = ?", serviceID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Service not found",
		})
	}

	msg := models.Message{
		SenderID:   userUUID,
		ReceiverID: receiverID,
		Body:       h.Sanitize.Sanitize(req.Body),
		ProviderID: providerID,
		ServiceID:  serviceID,
	}

	if err := h.DB.Create(&msg).Error; err != nil {
		log.Println("Error creating message:", err)
		return fail500(c, "Failed to send message")
	}

	h.Hub.SendToParticipants(msg.SenderID, msg.ReceiverID, fiber.Map{
		"type":    "new_message",
		"message": msg,
	})

	notif := map[string]interface{}{
		"type":        "chat_message",
		"provider_id": providerID.String(),
		"service_id":  serviceID.String(),
		"sender_id":   userUUID.String(),
		"body":        msg.Body,
	}
	payload, _ := json.Marshal(notif)
	h.RDB.Publish(context.Background(), "notifications:"+receiverID.String(), payload)

	return c.JSON(fiber.Map{
		"success": true,
		"data":    msg,
	})
}

// WebSocketHandler keeps a connection registered on the hub so new
// messages reach the client as they are written.
func (h *ChatHandler) WebSocketHandler(c *websocket.Conn) {
	userID := c.Query("user_id")
	if userID == "" {
		log.Println("WebSocket: user_id parameter missing")
		c.Close()
		return
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		log.Println("WebSocket: invalid user_id:", userID, "error:", err)
		c.Close()
		return
	}

	log.Printf("WebSocket: user %s connected\n", userID)

	client := &realtime.Client{
		ID:     uuid.New().String(),
		UserID: userUUID,
		Conn:   realtime.NewWebSocketConn(c),
		Send:   make(chan []byte, 256),
	}

	h.Hub.RegisterClient(client)
	defer func() {
		h.Hub.UnregisterClient(client)
		log.Printf("WebSocket: user %s disconnected\n", userID)
	}()

	go func() {
		for msg := range client.Send {
			if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Println("WebSocket write error:", err)
				return
			}
		}
	}()

	// read loop keeps the connection alive
	for {
		var payload map[string]interface{}
		if err := c.ReadJSON(&payload); err != nil {
			log.Printf("WebSocket read error for user %s: %v\n", userID, err)
			break
		}

		if msgType, ok := payload["type"].(string); ok && msgType == "pong" {
			continue
		}
	}
}
