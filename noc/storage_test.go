// Copyright 2026 The VTR-RRGraph-Core Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package noc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddRouterRejectsDuplicateGridLocation(t *testing.T) {
	s := NewStorage()
	_, err := s.AddRouter(0, 1, 1, 0.1)
	require.NoError(t, err)
	_, err = s.AddRouter(1, 1, 1, 0.1)
	require.Error(t, err)
}

func TestAddLinkRejectsSameSourceAndSink(t *testing.T) {
	s := NewStorage()
	r0, err := s.AddRouter(0, 0, 0, 0.1)
	require.NoError(t, err)
	_, err = s.AddLink(r0, r0, 1e9, 1e-9)
	require.Error(t, err)
}

func TestFinishedBuildingRejectsFurtherMutation(t *testing.T) {
	s := NewStorage()
	r0, _ := s.AddRouter(0, 0, 0, 0.1)
	r1, _ := s.AddRouter(1, 1, 0, 0.1)
	s.FinishedBuilding()

	_, err := s.AddLink(r0, r1, 1e9, 1e-9)
	require.Error(t, err)
	_, err = s.AddRouter(2, 2, 0, 0.1)
	require.Error(t, err)
}

func TestAdjacencyAndLookups(t *testing.T) {
	s := NewStorage()
	r0, _ := s.AddRouter(10, 0, 0, 0.1)
	r1, _ := s.AddRouter(11, 1, 0, 0.1)
	l01, err := s.AddLink(r0, r1, 1e9, 1e-9)
	require.NoError(t, err)
	l10, err := s.AddLink(r1, r0, 1e9, 1e-9)
	require.NoError(t, err)

	require.Equal(t, []LinkID{l01}, s.OutgoingLinks(r0))
	require.Equal(t, []LinkID{l10}, s.IncomingLinks(r0))

	got, ok := s.RouterByUserID(11)
	require.True(t, ok)
	require.Equal(t, r1, got)

	got, ok = s.RouterAtLocation(GridLocation{X: 0, Y: 0})
	require.True(t, ok)
	require.Equal(t, r0, got)

	link, ok := s.LinkBetween(r0, r1)
	require.True(t, ok)
	require.Equal(t, l01, link)

	_, ok = s.LinkBetween(r1, r1)
	require.False(t, ok)
}
