// This file is part of Nesgopher.
//
// Nesgopher is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Nesgopher is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Nesgopher.  If not, see <https://www.gnu.org/licenses/>.

package cartridgeloader

import (
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/nesgopher/nesgopher/curated"
)

// Sentinal error patterns.
const (
	LoadError         = "cartridgeloader: %v"
	UnsupportedScheme = "cartridgeloader: unsupported URL scheme (%s)"
	UnexpectedHash    = "cartridgeloader: unexpected hash value (%s)"
	NoData            = "cartridgeloader: no data in %s"
)

// Loader is used to specify the cartridge to attach to the NES.
type Loader struct {
	// filename or URL of the cartridge data
	Filename string

	// expected hash of the loaded data. an empty string indicates that the
	// hash is unknown and need not be validated. after a successful load the
	// value will be the hash of the loaded data
	Hash string

	// copy of the loaded data
	Data []byte
}

// NewLoader is the preferred method of initialisation for the Loader type.
func NewLoader(filename string) Loader {
	return Loader{
		Filename: strings.TrimSpace(filename),
	}
}

// NewLoaderFromData returns a Loader that has already been loaded with data.
// The name is used in place of a filename.
func NewLoaderFromData(name string, data []byte) Loader {
	cl := Loader{
		Filename: name,
		Data:     make([]byte, len(data)),
	}
	copy(cl.Data, data)
	cl.Hash = hash(cl.Data)
	return cl
}

func hash(data []byte) string {
	return fmt.Sprintf("%x", sha1.Sum(data))
}

// ShortName returns the filename without path or extension.
func (cl Loader) ShortName() string {
	s := path.Base(cl.Filename)
	return strings.TrimSuffix(s, path.Ext(s))
}

// HasLoaded returns true if Load() has been successfully called.
func (cl Loader) HasLoaded() bool {
	return len(cl.Data) > 0
}

// Load the cartridge data. Filenames with an http or https scheme are loaded
// over the network, otherwise the filename is taken to be a local file.
// Calling Load() on a Loader that has already been loaded does nothing.
func (cl *Loader) Load() error {
	if cl.HasLoaded() {
		return nil
	}

	scheme := "file"
	if u, err := url.Parse(cl.Filename); err == nil && u.Scheme != "" {
		scheme = strings.ToLower(u.Scheme)
	}

	var data []byte
	var err error

	switch scheme {
	case "http", "https":
		var resp *http.Response
		resp, err = http.Get(cl.Filename)
		if err != nil {
			return curated.Errorf(LoadError, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return curated.Errorf(LoadError, resp.Status)
		}

		data, err = io.ReadAll(resp.Body)
		if err != nil {
			return curated.Errorf(LoadError, err)
		}

	case "file":
		data, err = os.ReadFile(strings.TrimPrefix(cl.Filename, "file://"))
		if err != nil {
			return curated.Errorf(LoadError, err)
		}

	default:
		return curated.Errorf(UnsupportedScheme, scheme)
	}

	if len(data) == 0 {
		return curated.Errorf(NoData, cl.Filename)
	}

	h := hash(data)
	if cl.Hash != "" && cl.Hash != h {
		return curated.Errorf(UnexpectedHash, h)
	}

	cl.Hash = h
	cl.Data = data

	return nil
}
