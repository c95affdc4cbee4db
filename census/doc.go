// SPDX-License-Identifier: MIT
//
// Package census reads the raw record stream geotree.Build consumes from a
// CSV file, resolving the configured geographic and query column names
// against the file's header, and writes the synthetic microdata table back
// out the same way.
package census
