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

package tools

import (
	"context"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripwise-ai/tripwise/biz/model"
)

func TestTravelInfoMissingDestination(t *testing.T) {
	d := newTestDeps(0)

	out, err := d.travelInfo(context.Background(), &TravelInfoRequest{})
	require.NoError(t, err)

	te := decodeToolError(t, out)
	assert.Equal(t, model.ErrTypeValidation, te.ErrorType)
	assert.Contains(t, te.Message, "destination")
}

func TestTravelInfoInvalidType(t *testing.T) {
	d := newTestDeps(0)

	out, err := d.travelInfo(context.Background(), &TravelInfoRequest{
		Destination: "Paris", InfoType: "nightlife",
	})
	require.NoError(t, err)

	te := decodeToolError(t, out)
	assert.Equal(t, model.ErrTypeValidation, te.ErrorType)
	assert.Contains(t, te.Suggestion, "visa")
}

func TestTravelInfoDefaultsToGeneral(t *testing.T) {
	d := newTestDeps(0)

	out, err := d.travelInfo(context.Background(), &TravelInfoRequest{Destination: "Paris"})
	require.NoError(t, err)

	res := &model.DestinationInfoResult{}
	require.NoError(t, sonic.UnmarshalString(out, res))

	assert.Equal(t, model.StatusSuccess, res.Status)
	require.NotNil(t, res.Information)
	assert.Equal(t, "Paris", res.Information.Destination)
	assert.Equal(t, "general", res.Information.InfoType)
	assert.NotEmpty(t, res.Information.Disclaimer)
	assert.Contains(t, res.Information.Details, "overview")
	assert.Contains(t, res.Information.Details, "best_time_to_visit")
	assert.Contains(t, res.Information.Details, "language")
}

func TestTravelInfoAllTypes(t *testing.T) {
	d := newTestDeps(0)

	for _, infoType := range infoTypes {
		out, err := d.travelInfo(context.Background(), &TravelInfoRequest{
			Destination: "Tokyo", InfoType: infoType,
		})
		require.NoError(t, err, infoType)

		res := &model.DestinationInfoResult{}
		require.NoError(t, sonic.UnmarshalString(out, res), infoType)
		assert.Equal(t, model.StatusSuccess, res.Status, infoType)
		assert.Equal(t, infoType, res.Information.InfoType, infoType)
		assert.NotEmpty(t, res.Information.Details, infoType)
	}
}

func TestTravelInfoCachedOnSecondCall(t *testing.T) {
	d := newTestDeps(0)
	req := &TravelInfoRequest{Destination: "Rome", InfoType: "visa"}

	first, err := d.travelInfo(context.Background(), req)
	require.NoError(t, err)
	second, err := d.travelInfo(context.Background(), req)
	require.NoError(t, err)

	res1, res2 := &model.DestinationInfoResult{}, &model.DestinationInfoResult{}
	require.NoError(t, sonic.UnmarshalString(first, res1))
	require.NoError(t, sonic.UnmarshalString(second, res2))

	assert.False(t, res1.Cached)
	assert.True(t, res2.Cached)
	assert.Equal(t, res1.Information.Details, res2.Information.Details)
}

func TestTravelInfoOutage(t *testing.T) {
	d := newTestDeps(1)

	out, err := d.travelInfo(context.Background(), &TravelInfoRequest{Destination: "Paris"})
	require.NoError(t, err)

	te := decodeToolError(t, out)
	assert.Equal(t, model.ErrTypeServiceUnavailable, te.ErrorType)
}
