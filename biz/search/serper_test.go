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

package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponseOrganic(t *testing.T) {
	body := []byte(`{
		"knowledgeGraph": {"title": "Paris", "website": "https://paris.fr", "description": "Capital of France"},
		"organic": [
			{"title": "Visit Paris", "link": "https://example.com/paris", "snippet": "Top sights", "position": 1},
			{"title": "Paris guide", "link": "https://example.com/guide", "snippet": "A guide", "position": 2}
		]
	}`)

	res, err := ParseResponse(200, body)
	require.NoError(t, err)
	require.NotNil(t, res.KnowledgeGraph)
	assert.Equal(t, "Paris", res.KnowledgeGraph.Title)
	require.Len(t, res.Organic, 2)
	assert.Equal(t, 1, res.Organic[0].Position)
}

func TestParseResponseNews(t *testing.T) {
	body := []byte(`{"news": [{"title": "Strike", "link": "l", "snippet": "s", "date": "2 days ago", "source": "Le Monde"}]}`)

	res, err := ParseResponse(200, body)
	require.NoError(t, err)
	require.Len(t, res.News, 1)
	assert.Equal(t, "Le Monde", res.News[0].Source)
}

func TestParseResponsePlaces(t *testing.T) {
	body := []byte(`{"places": [{"title": "Cafe", "address": "1 Rue", "rating": 4.5, "ratingCount": 120, "category": "Cafe"}]}`)

	res, err := ParseResponse(200, body)
	require.NoError(t, err)
	require.Len(t, res.Places, 1)
	assert.Equal(t, 120, res.Places[0].Reviews)
}

func TestParseResponseRetryableStatuses(t *testing.T) {
	for _, status := range []int{429, 500, 502, 503} {
		_, err := ParseResponse(status, nil)
		assert.ErrorIs(t, err, ErrUnavailable, "status %d", status)
	}
}

func TestParseResponseTerminalClientError(t *testing.T) {
	_, err := ParseResponse(403, nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnavailable)
}

func TestParseResponseBadJSON(t *testing.T) {
	_, err := ParseResponse(200, []byte("{broken"))
	assert.Error(t, err)
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(&Config{})
	assert.Error(t, err)
}
