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

package fdlimit

import (
	ethfdlimit "github.com/ethereum/go-ethereum/common/fdlimit"
	"github.com/pkg/errors"
	"github.com/yeeco/ledger/log"
)

// Ensure raises the soft file descriptor limit so that at least want handles
// are available, never above the hard limit. It returns the new limit.
func Ensure(want int) (int, error) {
	curr, err := ethfdlimit.Current()
	if err != nil {
		return 0, errors.Wrap(err, "fdlimit: current")
	}
	if curr >= want {
		return curr, nil
	}
	max, err := ethfdlimit.Maximum()
	if err != nil {
		return curr, errors.Wrap(err, "fdlimit: maximum")
	}
	if want > max {
		log.Warn("fdlimit: wanted handles above hard limit", "want", want, "max", max)
		want = max
	}
	raised, err := ethfdlimit.Raise(uint64(want))
	if err != nil {
		return curr, errors.Wrap(err, "fdlimit: raise")
	}
	log.Infof("fdLimit raise %d -> %d, max %d", curr, raised, max)
	return int(raised), nil
}
