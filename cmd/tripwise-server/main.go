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

// Command tripwise-server exposes the travel assistant over HTTP with
// SSE streaming replies.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/cloudwego/hertz/pkg/app/server"

	"github.com/tripwise-ai/tripwise/biz/agent"
	"github.com/tripwise-ai/tripwise/biz/handler"
	"github.com/tripwise-ai/tripwise/biz/infra"
	"github.com/tripwise-ai/tripwise/conf"
	"github.com/tripwise-ai/tripwise/pkg/mem"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML config file")
	debug := flag.Bool("debug", false, "enable component logging and the devops server")
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

	chat := handler.NewChat(runner, mem.NewMemory(cfg.Tools.MemoryWindow))

	h := server.Default(server.WithHostPorts(cfg.Server.Addr))
	h.POST("/api/chat", chat.Stream)
	h.GET("/ping", handler.Ping)
	h.Spin()
}
