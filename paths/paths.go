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

package paths

import (
	"os"
	"path"
)

// the base path for all resources. note that we don't use this value directly
// except in the getBasePath() function. that function should be used instead.
const baseResourcePath = ".hdmicore"

// ResourcePath returns the resource string (representing the resource to be
// loaded) prepended with operating system specific details.
func ResourcePath(resource ...string) string {
	p := make([]string, 0, len(resource)+1)
	p = append(p, getBasePath())
	p = append(p, resource...)
	return path.Join(p...)
}

// getBasePath() returns baseResourcePath with the user's config directory
// prepended if the unadorned baseResourcePath cannot be found in the current
// directory.
//
// note that we're not checking for the existance of the resource requested by
// the caller, or even the existance of the config directory.
func getBasePath() string {
	if _, err := os.Stat(baseResourcePath); err == nil {
		return baseResourcePath
	}

	cnf, err := os.UserConfigDir()
	if err != nil {
		return baseResourcePath
	}
	return path.Join(cnf, baseResourcePath[1:])
}

// Exists returns true if the resource is present.
func Exists(resource ...string) bool {
	_, err := os.Stat(ResourcePath(resource...))
	return err == nil
}
