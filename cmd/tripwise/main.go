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

// Command tripwise is the interactive terminal front-end for the
// travel assistant.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"

	"github.com/tripwise-ai/tripwise/biz/agent"
	"github.com/tripwise-ai/tripwise/biz/infra"
	"github.com/tripwise-ai/tripwise/conf"
	"github.com/tripwise-ai/tripwise/pkg/mem"
)

func main() {
	threadID := flag.String("id", "", "conversation thread id, random when empty")
	configPath := flag.String("config", "", "path to the YAML config file")
	debug := flag.Bool("debug", false, "dump raw agent events and enable the devops server")
	flag.Parse()

	ctx := context.Background()

	cfg, err := conf.Load(ctx, *configPath)
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	if *debug {
		infra.InitDebug(ctx)
	}
	infra.InitCozeLoopTracing(ctx)

	runner, err := agent.NewRunner(ctx, cfg)
	if err != nil {
		log.Fatalf("init travel agent failed: %v", err)
	}

	id := *threadID
	if id == "" {
		id = uuid.NewString()
	}
	memory := mem.NewMemory(cfg.Tools.MemoryWindow)
	conv := memory.GetConversation(id, true)

	fmt.Println("Tripwise travel assistant. Ask about flights, hotels or destinations.")
	fmt.Println("Type 'exit' to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nYou: ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			break
		}

		conv.Append(schema.UserMessage(input))

		fmt.Print("\nAssistant: ")
		iter := runner.Run(ctx, conv.GetMessages())
		reply := printEvents(iter, *debug)
		if reply != "" {
			conv.Append(schema.AssistantMessage(reply, nil))
		}
	}
}
