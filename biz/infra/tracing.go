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

package infra

import (
	"context"
	"os"

	"github.com/RanFeng/ilog"
	clc "github.com/cloudwego/eino-ext/callbacks/cozeloop"
	"github.com/cloudwego/eino-ext/devops"
	"github.com/cloudwego/eino/callbacks"
	"github.com/coze-dev/cozeloop-go"
)

// InitCozeLoopTracing registers the CozeLoop trace handler when the
// COZELOOP_API_TOKEN and COZELOOP_WORKSPACE_ID env vars are set.
func InitCozeLoopTracing(ctx context.Context) {
	apiToken := os.Getenv("COZELOOP_API_TOKEN")
	workspaceID := os.Getenv("COZELOOP_WORKSPACE_ID")
	if apiToken == "" || workspaceID == "" {
		return
	}

	client, err := cozeloop.NewClient(
		cozeloop.WithAPIToken(apiToken),
		cozeloop.WithWorkspaceID(workspaceID),
	)
	if err != nil {
		ilog.EventError(ctx, err, "init_cozeloop_failed")
		return
	}
	cozeloop.SetDefaultClient(client)
	callbacks.AppendGlobalHandlers(clc.NewLoopHandler(client))
	ilog.EventInfo(ctx, "cozeloop_tracing_ready", "workspace", workspaceID)
}

// InitDebug wires the local debug surfaces: the eino devops server for
// graph visualization and the component logger callback.
func InitDebug(ctx context.Context) {
	if err := devops.Init(ctx); err != nil {
		ilog.EventError(ctx, err, "init_devops_failed")
	}
	callbacks.AppendGlobalHandlers(&LoggerCallback{})
	ilog.EventInfo(ctx, "debug_mode_ready")
}
