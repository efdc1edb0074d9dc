package checkpointer

import ts "github.com/samuelfneumann/gridlearn/timestep"

// nEpisode implements checkpointing every N episodes
type nEpisode struct {
	interval int
	episodes int
	object   Serializable // Object to save

	// filename returns the name of the file to save the object in. Use
	// FilenameEnumerator to save each checkpoint in a separate, numbered
	// file (e.g. file1.bin, file2.bin, ..., fileK.bin).
	filename func() string
}

// NewNEpisode returns a checkpointer that checkpoints every n episodes.
func NewNEpisode(n int, object Serializable,
	filename func() string) Checkpointer {
	if n <= 0 {
		panic("newNEpisode: n must be positive")
	}
	return &nEpisode{
		interval: n,
		object:   object,
		filename: filename,
	}
}

// Checkpoint saves the Checkpointer's tracked object when t ends every
// n-th episode
func (n *nEpisode) Checkpoint(t ts.TimeStep) error {
	if !t.Last() {
		return nil
	}

	n.episodes++
	if n.episodes%n.interval == 0 {
		return Save(n.filename(), n.object)
	}
	return nil
}
