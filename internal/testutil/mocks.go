package testutil

import (
	"context"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/windoze95/lookforrecipes/internal/source"
)

// --- MockSearchProvider ---

// SearchCall records the arguments of one Search call.
type SearchCall struct {
	Keyword string
	Limit   int
	Sort    source.SortStrategy
}

// MockSearchProvider is a mock implementation of source.SearchProvider.
type MockSearchProvider struct {
	SearchFunc func(ctx context.Context, keyword string, limit int, sort source.SortStrategy) ([]source.RawResult, error)

	mu    sync.Mutex
	Calls []SearchCall
}

func (m *MockSearchProvider) Search(ctx context.Context, keyword string, limit int, sort source.SortStrategy) ([]source.RawResult, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, SearchCall{Keyword: keyword, Limit: limit, Sort: sort})
	m.mu.Unlock()

	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, keyword, limit, sort)
	}
	return nil, fmt.Errorf("Search not configured")
}

// SearchCalls returns a copy of the recorded calls.
func (m *MockSearchProvider) SearchCalls() []SearchCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SearchCall(nil), m.Calls...)
}

// --- MockBotClient ---

// MockBotClient is a mock implementation of bot.Client. Every Chattable
// passed to Send or Request is recorded, including failed ones.
type MockBotClient struct {
	SendFunc    func(c tgbotapi.Chattable) (tgbotapi.Message, error)
	RequestFunc func(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)

	mu       sync.Mutex
	Sent     []tgbotapi.Chattable
	Requests []tgbotapi.Chattable
}

func (m *MockBotClient) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	m.mu.Lock()
	m.Sent = append(m.Sent, c)
	m.mu.Unlock()

	if m.SendFunc != nil {
		return m.SendFunc(c)
	}
	return tgbotapi.Message{}, nil
}

func (m *MockBotClient) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	m.mu.Lock()
	m.Requests = append(m.Requests, c)
	m.mu.Unlock()

	if m.RequestFunc != nil {
		return m.RequestFunc(c)
	}
	return &tgbotapi.APIResponse{Ok: true}, nil
}

// SentMessages returns a copy of everything passed to Send.
func (m *MockBotClient) SentMessages() []tgbotapi.Chattable {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]tgbotapi.Chattable(nil), m.Sent...)
}

// SentRequests returns a copy of everything passed to Request.
func (m *MockBotClient) SentRequests() []tgbotapi.Chattable {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]tgbotapi.Chattable(nil), m.Requests...)
}
