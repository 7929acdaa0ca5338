// Package downloads implements the local side of the sync system: the
// download index the engine diffs against, and the transfer service that
// executes its commands.
//
// The index is a lazy cursor over the download_records table; a fresh
// cursor per pass keeps each diff on one consistent snapshot. The service
// owns the records exclusively. Add commands upsert a queued record and
// wake a background worker that streams the segment object from the
// remote bucket into the download directory (via a .partial rename for
// crash safety); remove commands drop the record and the file; resume
// requeues failed transfers.
//
// Commands deliberately carry no completion signal back to the engine.
// Whatever a transfer actually did is observed by the next pass.
package downloads
