// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package tachyon

// CpuFeatureError is returned by NewHasher/NewFull when no kernel backend
// can run on the current platform (§7). It is never returned because of
// input content: hashing errors are always construction-time.
type CpuFeatureError struct {
	Reason string
}

func (e *CpuFeatureError) Error() string {
	return "tachyon: CPU features missing: " + e.Reason
}
