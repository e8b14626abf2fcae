// Copyright (C) 2019 gyee authors
//
// This file is part of the gyee library.
//
// The gyee library is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The gyee library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with the gyee library.  If not, see <http://www.gnu.org/licenses/>.

package logging

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestSetLevel(t *testing.T) {
	defer Logger.SetLevel(logrus.InfoLevel)

	require.NoError(t, SetLevel("debug"))
	require.Equal(t, logrus.DebugLevel, Logger.Level)
	require.Error(t, SetLevel("loud"))
}

func TestFileRotationHooker(t *testing.T) {
	dir, err := ioutil.TempDir("", "ledger-log")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	hook, err := newFileRotateHooker(dir, 3)
	require.NoError(t, err)
	require.Contains(t, hook.Levels(), logrus.InfoLevel)

	_, err = newFileRotateHooker("", 3)
	require.Error(t, err)
}
