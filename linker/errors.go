/*
 * EUCLID-64 - Linker error kinds (§7).
 */

package linker

import "errors"

var ErrLink = errors.New("link error")
