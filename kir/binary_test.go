// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kryonlabs/kryon-sub005/ir"
)

func TestBinaryRoundTrip(t *testing.T) {
	_, doc := buildScenario()

	data, err := MarshalBinary(doc)
	require.NoError(t, err)

	assert.Equal(t, Magic[:], data[:4])
	assert.Equal(t, VersionMajor, data[4])
	assert.Equal(t, VersionMinor, data[5])

	ctx2 := ir.NewContext()
	got, err := UnmarshalBinary(data, ctx2)
	require.NoError(t, err)

	require.NotNil(t, got.Root)
	assert.Equal(t, "app", got.Root.Tag)
	require.Len(t, got.Manifest.Variables, 4)
	require.Len(t, got.Bytecode.Functions, 2)
}

func TestBinaryRejectsBadMagic(t *testing.T) {
	_, doc := buildScenario()
	data, err := MarshalBinary(doc)
	require.NoError(t, err)

	corrupt := append([]byte(nil), data...)
	corrupt[0] = 'X'

	ctx := ir.NewContext()
	_, err = UnmarshalBinary(corrupt, ctx)
	assert.Error(t, err)
}

func TestBinaryRejectsNewerMajorVersion(t *testing.T) {
	_, doc := buildScenario()
	data, err := MarshalBinary(doc)
	require.NoError(t, err)

	corrupt := append([]byte(nil), data...)
	corrupt[4] = VersionMajor + 1

	ctx := ir.NewContext()
	_, err = UnmarshalBinary(corrupt, ctx)
	assert.Error(t, err)
}

func TestBinaryRejectsTruncatedPayload(t *testing.T) {
	_, doc := buildScenario()
	data, err := MarshalBinary(doc)
	require.NoError(t, err)

	ctx := ir.NewContext()
	_, err = UnmarshalBinary(data[:len(data)-10], ctx)
	assert.Error(t, err)
}
