package game

// Director picks cells on the player's behalf.
type Director interface {
	/**
	 * Initialize the director for a fresh board
	 */
	Init(*Board)

	/**
	 * Choose the next cell to reveal
	 */
	Next() (Coord, error)
}
