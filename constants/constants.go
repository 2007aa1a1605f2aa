package constants

// URLScheme starts every exported collection link.
const URLScheme = "irealb://"

// MusicMarker precedes the scrambled chart text of every song.
const MusicMarker = "1r34LbKcu7"

// CollectionSeparator splits songs; the last part is the collection title.
const CollectionSeparator = "==="

const FieldSeparator = "="

const DefaultCollectionTitle = "No Title"

// BlockSize is the length of a scrambled block, in characters.
const BlockSize = 50

// BarsPerLine is how many bars a rendered chart puts on each line.
const BarsPerLine = 4

// CellWidth is the rendered width of one beat slot.
const CellWidth = 6

// MinDisplaySlots pads short bars (e.g. 3/4) to a common width.
const MinDisplaySlots = 4
