// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/thor"
)

// Authority decides whether caller may run privileged operations.
// owner is the pool owner currently in storage.
type Authority interface {
	Authorize(caller, owner thor.Address) error
}

// AuthorityFunc adapts a function to Authority.
type AuthorityFunc func(caller, owner thor.Address) error

func (f AuthorityFunc) Authorize(caller, owner thor.Address) error { return f(caller, owner) }

// OwnerOnly admits the pool owner only.
var OwnerOnly = AuthorityFunc(func(caller, owner thor.Address) error {
	if caller.IsZero() || caller != owner {
		return errors.WithMessagef(ErrUnauthorized, "%v is not the owner", caller)
	}
	return nil
})
