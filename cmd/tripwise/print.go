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

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cloudwego/eino/adk"
	"github.com/cloudwego/eino/schema"
	"github.com/davecgh/go-spew/spew"
)

// printEvents drains one agent run, echoing assistant output to stdout
// as it streams. Returns the assembled assistant reply.
func printEvents(iter *adk.AsyncIterator[*adk.AgentEvent], debug bool) string {
	var reply strings.Builder

	for {
		event, ok := iter.Next()
		if !ok {
			break
		}
		if debug {
			spew.Dump(event)
		}
		if event.Err != nil {
			fmt.Printf("\n[error] %v\n", event.Err)
			break
		}
		if event.Output == nil || event.Output.MessageOutput == nil {
			continue
		}

		mv := event.Output.MessageOutput
		switch mv.Role {
		case schema.Tool:
			if mv.ToolName != "" {
				fmt.Printf("\n[tool: %s]\n", mv.ToolName)
			}
		case schema.Assistant:
			if !mv.IsStreaming {
				if mv.Message != nil {
					printToolCalls(mv.Message)
					if mv.Message.Content != "" {
						fmt.Print(mv.Message.Content)
						reply.WriteString(mv.Message.Content)
					}
				}
				continue
			}
			for {
				chunk, err := mv.MessageStream.Recv()
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					fmt.Printf("\n[stream error] %v\n", err)
					break
				}
				printToolCalls(chunk)
				if chunk.Content != "" {
					fmt.Print(chunk.Content)
					reply.WriteString(chunk.Content)
				}
			}
		}
	}

	fmt.Println()
	return reply.String()
}

func printToolCalls(msg *schema.Message) {
	for _, tc := range msg.ToolCalls {
		if tc.Function.Name != "" {
			fmt.Printf("\n[calling: %s]\n", tc.Function.Name)
		}
	}
}
