// Package metadata reads the video metadata yt-dlp writes next to captions.
package metadata

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nguyentantai21042004/transcript-flow/internal/chapter"
	"github.com/nguyentantai21042004/transcript-flow/internal/naming"
)

// InfoSuffix is appended to a stem for the metadata file name.
const InfoSuffix = ".info.json"

// Info is the subset of a yt-dlp info.json the pipeline uses.
type Info struct {
	ID          string             `json:"id" validate:"required"`
	Title       string             `json:"title" validate:"required"`
	UploadDate  string             `json:"upload_date"`
	ReleaseDate string             `json:"release_date"`
	Timestamp   *float64           `json:"timestamp"`
	WebpageURL  string             `json:"webpage_url"`
	URL         string             `json:"url"`
	Duration    float64            `json:"duration" validate:"gte=0"`
	Chapters    []chapter.Metadata `json:"chapters" validate:"dive"`
}

// Playlist is the flat listing of a channel or playlist.
type Playlist struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Entries []Info `json:"entries"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// Decode reads and validates one info document.
func Decode(r io.Reader) (*Info, error) {
	var info Info
	if err := json.NewDecoder(r).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode info: %w", err)
	}
	if err := info.Validate(); err != nil {
		return nil, err
	}
	return &info, nil
}

// ReadFile opens and decodes an info.json file.
func ReadFile(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open info: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// DecodePlaylist reads a flat playlist listing. Entries failing validation
// are dropped.
func DecodePlaylist(data []byte) ([]Info, error) {
	var p Playlist
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode playlist: %w", err)
	}

	out := make([]Info, 0, len(p.Entries))
	for _, e := range p.Entries {
		if e.Validate() == nil {
			out = append(out, e)
		}
	}
	return out, nil
}

// Validate checks required fields and chapter starts.
func (i *Info) Validate() error {
	if err := validate.Struct(i); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid info: field %s failed %q", verrs[0].Namespace(), verrs[0].Tag())
		}
		return fmt.Errorf("invalid info: %w", err)
	}
	return nil
}

// Boundaries returns chapter boundaries in source order.
func (i *Info) Boundaries() []chapter.Boundary {
	return chapter.FromMetadata(i.Chapters)
}

// PublishedDate picks the first date field yt-dlp filled in, as YYYY-MM-DD.
func (i *Info) PublishedDate() string {
	switch {
	case i.UploadDate != "":
		return naming.NormalizeDate(i.UploadDate)
	case i.Timestamp != nil:
		return naming.DateFromUnix(int64(*i.Timestamp))
	case i.ReleaseDate != "":
		return naming.NormalizeDate(i.ReleaseDate)
	}
	return naming.UnknownDate
}

// Stem is the file stem for this video.
func (i *Info) Stem() string {
	return naming.Stem(i.PublishedDate(), i.Title)
}

// Link returns the watch URL, building one from the ID when yt-dlp gave none.
func (i *Info) Link() string {
	if i.WebpageURL != "" {
		return i.WebpageURL
	}
	if strings.HasPrefix(i.URL, "http") {
		return i.URL
	}
	return "https://www.youtube.com/watch?v=" + i.ID
}
