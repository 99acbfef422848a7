/*
Package catalog is a client for the remote music catalog. It browses the release
groups (albums, singles, EPs and so on) published by an artist and finds their
front covers.

Two web services are used:

  - MusicBrainz API: https://musicbrainz.org/doc/MusicBrainz_API
  - Cover Art Archive: https://musicbrainz.org/doc/Cover_Art_Archive/API
*/
package catalog
