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

// Package handler serves the chat API. Replies stream to the client as
// server-sent events while the conversation accumulates in memory.
package handler

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/RanFeng/ilog"
	"github.com/bytedance/sonic"
	"github.com/cloudwego/eino/adk"
	"github.com/cloudwego/eino/schema"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/cloudwego/hertz/pkg/protocol/sse"
	"github.com/google/uuid"

	"github.com/tripwise-ai/tripwise/biz/model"
	"github.com/tripwise-ai/tripwise/pkg/mem"
)

// Chat owns the runner and the conversation store shared by requests.
type Chat struct {
	runner *adk.Runner
	memory *mem.Memory
}

func NewChat(runner *adk.Runner, memory *mem.Memory) *Chat {
	return &Chat{runner: runner, memory: memory}
}

// Stream handles POST /api/chat. The request message joins the thread
// history, the agent runs on the full history and each reply chunk is
// written as one SSE message_chunk event.
func (h *Chat) Stream(ctx context.Context, c *app.RequestContext) {
	req := &model.ChatRequest{}
	if err := sonic.Unmarshal(c.Request.Body(), req); err != nil {
		c.JSON(consts.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		c.JSON(consts.StatusBadRequest, map[string]string{"error": "message is required"})
		return
	}
	if req.ThreadID == "" {
		req.ThreadID = uuid.NewString()
	}

	ilog.EventInfo(ctx, "chat_request", "thread_id", req.ThreadID)

	conv := h.memory.GetConversation(req.ThreadID, true)
	conv.Append(schema.UserMessage(req.Message))

	w := sse.NewWriter(c)
	defer w.Close()

	iter := h.runner.Run(ctx, conv.GetMessages())
	reply := h.stream(ctx, req.ThreadID, iter, w)
	if reply != "" {
		conv.Append(schema.AssistantMessage(reply, nil))
	}

	_ = w.WriteEvent("", "done", nil)
}

// stream drains the agent event iterator into the SSE writer and
// returns the assembled assistant reply.
func (h *Chat) stream(ctx context.Context, threadID string, iter *adk.AsyncIterator[*adk.AgentEvent], w *sse.Writer) string {
	var reply strings.Builder

	for {
		event, ok := iter.Next()
		if !ok {
			break
		}
		if event.Err != nil {
			ilog.EventError(ctx, event.Err, "agent_event_error", "thread_id", threadID)
			h.push(ctx, w, "error", &model.ChatResponse{
				ThreadID: threadID,
				Agent:    event.AgentName,
				Role:     "assistant",
				Content:  "Something went wrong while handling your request. Please try again.",
			})
			break
		}
		if event.Output == nil || event.Output.MessageOutput == nil {
			continue
		}

		mv := event.Output.MessageOutput
		if mv.Role != schema.Assistant {
			continue
		}

		if !mv.IsStreaming {
			if mv.Message != nil && mv.Message.Content != "" {
				reply.WriteString(mv.Message.Content)
				h.push(ctx, w, "message_chunk", &model.ChatResponse{
					ThreadID:     threadID,
					Agent:        event.AgentName,
					Role:         "assistant",
					Content:      mv.Message.Content,
					FinishReason: finishReason(mv.Message),
				})
			}
			continue
		}

		for {
			chunk, err := mv.MessageStream.Recv()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				ilog.EventError(ctx, err, "stream_recv_error", "thread_id", threadID)
				break
			}
			if chunk.Content == "" {
				continue
			}
			reply.WriteString(chunk.Content)
			h.push(ctx, w, "message_chunk", &model.ChatResponse{
				ThreadID:     threadID,
				Agent:        event.AgentName,
				Role:         "assistant",
				Content:      chunk.Content,
				FinishReason: finishReason(chunk),
			})
		}
	}

	return reply.String()
}

func (h *Chat) push(ctx context.Context, w *sse.Writer, event string, data *model.ChatResponse) {
	payload, err := sonic.Marshal(data)
	if err != nil {
		ilog.EventError(ctx, err, "sse_marshal_error")
		return
	}
	if err := w.WriteEvent("", event, payload); err != nil {
		ilog.EventError(ctx, err, "sse_write_error")
	}
}

func finishReason(msg *schema.Message) string {
	if msg != nil && msg.ResponseMeta != nil {
		return msg.ResponseMeta.FinishReason
	}
	return ""
}

// Ping is the health probe.
func Ping(ctx context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusOK, map[string]string{"message": "pong"})
}
