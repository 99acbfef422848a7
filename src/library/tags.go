package library

import (
	"strings"
	"unicode"

	"github.com/dhowden/tag"
	"github.com/pborman/uuid"
)

// Canonical names of the tags which carry MusicBrainz information. Different
// tag formats spell them differently:
//
//   - Vorbis comments: MUSICBRAINZ_ALBUMID, ALBUMARTISTSORT
//   - ID3v2 TXXX frames: "MusicBrainz Album Id"
//   - MP4 freeform atoms: "----:com.apple.iTunes:MusicBrainz Album Id"
//
// All of them canonicalize to the same string with canonicalTagName.
const (
	tagMBAlbumID        = "musicbrainzalbumid"
	tagMBAlbumArtistID  = "musicbrainzalbumartistid"
	tagMBReleaseGroupID = "musicbrainzreleasegroupid"
	tagAlbumArtistSort  = "albumartistsort"
)

// tagAliases maps format specific frame names to canonical tag names.
var tagAliases = map[string]string{
	"tso2": tagAlbumArtistSort,
	"soaa": tagAlbumArtistSort,
}

// musicBrainzTags finds the MusicBrainz related values in the raw tags of an
// audio file. The result is keyed by canonical tag name. Identifiers which are
// not UUIDs are dropped.
func musicBrainzTags(raw map[string]interface{}) map[string]string {
	found := make(map[string]string)

	for key, val := range raw {
		var name, text string
		switch v := val.(type) {
		case string:
			name, text = key, v
		case *tag.Comm:
			// TXXX frames keep the real name of the tag in their description.
			name, text = v.Description, v.Text
		default:
			continue
		}

		canonical := canonicalTagName(name)
		if alias, ok := tagAliases[canonical]; ok {
			canonical = alias
		}

		switch canonical {
		case tagMBAlbumID, tagMBAlbumArtistID, tagMBReleaseGroupID:
			id := firstTagValue(text)
			if uuid.Parse(id) == nil {
				continue
			}
			found[canonical] = strings.ToLower(id)
		case tagAlbumArtistSort:
			if sortName := firstTagValue(text); sortName != "" {
				found[canonical] = sortName
			}
		}
	}

	return found
}

// canonicalTagName lower-cases a tag name and strips everything which is not
// a letter or a digit. Namespaced names keep only their last component.
func canonicalTagName(name string) string {
	if idx := strings.LastIndexByte(name, ':'); idx >= 0 {
		name = name[idx+1:]
	}

	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// firstTagValue returns the first value of a possibly multi-valued tag.
func firstTagValue(val string) string {
	first, _, _ := strings.Cut(val, "\x00")
	first, _, _ = strings.Cut(first, ";")
	return strings.TrimSpace(first)
}
