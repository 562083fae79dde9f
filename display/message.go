package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Sender identifies who wrote a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Canned bot texts.
const (
	WelcomeText         = "Bonjour! Je suis votre assistant chatbot. Comment puis-je vous aider aujourd'hui?"
	GenericErrorText    = "Désolé, une erreur est survenue."
	ConnectionErrorText = "Désolé, je ne peux pas me connecter au serveur en ce moment. Veuillez réessayer plus tard."
)

// Message is one entry of the conversation. Bot messages may carry
// statistics items alongside their text.
type Message struct {
	ID        uuid.UUID `json:"id"`
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	Items     []*Item   `json:"items,omitempty"`

	CypherQuery   string `json:"cypherQuery,omitempty"`
	ExecutionTime int64  `json:"executionTime,omitempty"` // milliseconds
	DataCount     int    `json:"dataCount"`
	Failed        bool   `json:"failed,omitempty"`
}

// WelcomeMessage is the greeting shown when a conversation starts.
func WelcomeMessage() *Message {
	return botMessage(WelcomeText)
}

// ConnectionErrorMessage is shown when the backend cannot be reached.
func ConnectionErrorMessage() *Message {
	m := botMessage(ConnectionErrorText)
	m.Failed = true
	return m
}

// NewUserMessage wraps a question typed by the user.
func NewUserMessage(text string) *Message {
	return &Message{
		ID:        uuid.New(),
		Sender:    SenderUser,
		Text:      text,
		Timestamp: time.Now(),
	}
}

func botMessage(text string) *Message {
	return &Message{
		ID:        uuid.New(),
		Sender:    SenderBot,
		Text:      text,
		Timestamp: time.Now(),
	}
}

// Details is the query summary line shown under a bot answer, or "" when
// the backend sent no query.
func (m *Message) Details() string {
	if m.CypherQuery == "" {
		return ""
	}
	parts := []string{"Requête Cypher: " + m.CypherQuery}
	if m.ExecutionTime > 0 {
		parts = append(parts, fmt.Sprintf("Temps: %dms", m.ExecutionTime))
	}
	parts = append(parts, fmt.Sprintf("Résultats: %d", m.DataCount))
	return strings.Join(parts, " | ")
}
