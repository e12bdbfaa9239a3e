// This file is part of hdmicore.
//
// hdmicore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// hdmicore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with hdmicore.  If not, see <https://www.gnu.org/licenses/>.

package audio

import "math"

// bestApproximation finds the fraction n/d closest to num/den with n and d no
// larger than maxN and maxD. It walks the continued fraction expansion of
// num/den and, when a convergent exceeds the limits, chooses between the
// previous convergent and the largest semi-convergent that fits.
func bestApproximation(num, den, maxN, maxD uint64) (uint64, uint64) {
	n, d := num, den
	var n0, d1 uint64 = 0, 0
	var n1, d0 uint64 = 1, 1

	for d != 0 {
		dp := d
		a := n / d
		d = n % d
		n = dp

		n2 := n0 + a*n1
		d2 := d0 + a*d1

		if n2 > maxN || d2 > maxD {
			t := uint64(math.MaxUint64)
			if d1 != 0 {
				t = (maxD - d0) / d1
			}
			if n1 != 0 {
				t = min(t, (maxN-n0)/n1)
			}

			// the semi-convergent is used if it is closer than the
			// previous convergent. on the first term there is no previous
			// convergent
			if d1 == 0 || 2*t > a || (2*t == a && d0*dp > d1*d) {
				n1 = n0 + t*n1
				d1 = d0 + t*d1
			}
			break
		}

		n0, n1 = n1, n2
		d0, d1 = d1, d2
	}

	return n1, d1
}
