package copyblobs

// Message constants
const (
	MsgShort = "Copy the blob store of one application to another"
	MsgLong  = `Copy every blob of the source application's blob store to the destination.

Both applications must expose the dbtransfer endpoints, each guarded by its
backup key. Blobs the destination already holds are skipped unless --override
is given; with --known-db those answers are remembered in a local database so a
restarted copy does not ask again. Content types listed by --skip-type are
never copied.`
	MsgExample = `  viur copy-blobs --src-app old-app --src-key K1 --dst-app new-app --dst-key K2
  viur copy-blobs --src-app old-app --src-key K1 --dst-host http://localhost:8080/ --dst-key K2 --known-db blobs.db`

	MsgFlagSrcApp   = "Appspot id of the source application"
	MsgFlagSrcHost  = "Base URL of the source application, instead of --src-app"
	MsgFlagSrcKey   = "Backup key of the source application"
	MsgFlagDstApp   = "Appspot id of the destination application"
	MsgFlagDstHost  = "Base URL of the destination application, instead of --dst-app"
	MsgFlagDstKey   = "Backup key of the destination application"
	MsgFlagKnownDB  = "Local database of blobs known to exist at the destination"
	MsgFlagOverride = "Copy blobs even if the destination already has them"
	MsgFlagSkipType = "Content type never copied, repeatable"

	MsgErrNoHost = "either --%s-app or --%s-host is required"
	MsgErrNoKey  = "--%s-key is required"
)
