// texstress fills a texture cache with synthetic workloads and reports
// how entries spread across the hash buckets.
package main

import "os"

func main() {
	err := newRootCommand().Execute()
	if err != nil { os.Exit(1) }
}
