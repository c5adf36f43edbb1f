// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state manages the storage slots of the ledger contracts.
// It follows the flow as bellow:
//
//	         o
//	         |
//	[ revertable state ]
//	         |
//	  [ stacked map ] -> [ journal ] -> [ stage ] -> [ kv bulk ]
//	         |
//	   [ lru cache ]
//	         |
//	   [ kv getter ]
//
// Every operation runs between NewCheckpoint and either RevertTo or success,
// which is what makes an operation all-or-nothing.
package state
