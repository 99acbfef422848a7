/*
Package following finds the albums of artists from the local library which are
published but missing from the library.

For the albums matching a library query it collects the distinct album artists.
Then for every artist it compares the release groups the artist has in the remote
catalog with the release groups of the artist's albums in the library. Release
groups which are not in the library are reported as missing.

Artists are processed one after the other. Errors from the remote catalog stop
the whole run.
*/
package following
