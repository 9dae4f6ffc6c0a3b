package constant

import _ "embed"

//go:embed ascii.txt
var AsciiArtLogo string

// Tagline is shown under the logo in the root help.
const Tagline = "Paste YouTube links, get titles and full transcriptions"
