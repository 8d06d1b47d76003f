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

package agent

const travelAgentInstruction = `
You are a helpful AI travel assistant. Your goal is to help users with travel planning by providing
information about destinations, flight and hotel options, and answering travel-related questions.

Use the available tools to:
1. Search for flights between destinations
2. Find hotels at specific locations
3. Provide travel information about destinations (visa requirements, weather, etc.)
4. Search the web for travel-related information

Always be courteous, professional, and provide accurate information. If you don't know something or
can't find the requested information, be honest about it and suggest alternatives.
`

const agentDescription = "An AI assistant that helps with travel planning and information."
