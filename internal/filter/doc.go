// Package filter implements the grayscale point, neighbourhood, frequency
// and morphology operations of the image processing exercises.
//
// Every operation takes a *dip.Gray and returns new images; sources are
// never modified. Neighbourhood operations take an explicit Border so the
// edge handling of each exercise can be reproduced:
//   - BorderReflect (fedcba|abcdefgh|hgfedcb) for box, gaussian and median
//   - BorderReflect101 (gfedcb|abcdefgh|gfedcba) for Laplacian and high boost
//   - BorderReplicate (aaaaaa|abcdefgh|hhhhhhh) for the adaptive median
//
// Row bands are processed in parallel on the dip worker pool.
package filter
