/*
 * Copyright 2025 Tripwise Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package mem keeps per-conversation chat history in memory.
package mem

import (
	"sync"

	"github.com/cloudwego/eino/schema"
)

const defaultWindow = 20

// Memory holds the conversations of all threads.
type Memory struct {
	mu            sync.Mutex
	conversations map[string]*Conversation
	window        int
}

// NewMemory creates a store whose conversations keep at most window
// messages; older ones are dropped from the front.
func NewMemory(window int) *Memory {
	if window <= 0 {
		window = defaultWindow
	}
	return &Memory{
		conversations: make(map[string]*Conversation),
		window:        window,
	}
}

// GetConversation returns the conversation for id, creating it when
// createIfNotExist is set. Returns nil for unknown ids otherwise.
func (m *Memory) GetConversation(id string, createIfNotExist bool) *Conversation {
	m.mu.Lock()
	defer m.mu.Unlock()

	conv, ok := m.conversations[id]
	if !ok && createIfNotExist {
		conv = &Conversation{ID: id, window: m.window}
		m.conversations[id] = conv
	}
	return conv
}

// ListConversations returns the ids of all known conversations.
func (m *Memory) ListConversations() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.conversations))
	for id := range m.conversations {
		ids = append(ids, id)
	}
	return ids
}

// Conversation is the rolling message history of one chat thread.
type Conversation struct {
	ID string

	mu       sync.Mutex
	messages []*schema.Message
	window   int
}

// Append adds a message to the history, trimming the front when the
// window is exceeded.
func (c *Conversation) Append(msg *schema.Message) {
	if msg == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.messages = append(c.messages, msg)
	if len(c.messages) > c.window {
		c.messages = c.messages[len(c.messages)-c.window:]
	}
}

// GetMessages returns a copy of the current history window.
func (c *Conversation) GetMessages() []*schema.Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*schema.Message, len(c.messages))
	copy(out, c.messages)
	return out
}
