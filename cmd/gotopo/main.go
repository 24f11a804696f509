// Command gotopo is a developer tool over the relate and overlay packages.
//
//	gotopo relate 'POLYGON ((0 0, 10 0, 10 10, 0 10, 0 0))' 'POINT (5 5)'
//	gotopo overlay union A B --output geojson
//	gotopo orient 0 0 10 0 5 5
package main

import (
	"fmt"
	"os"

	"github.com/golang/glog"
)

func main() {
	err := newRootCmd(os.Stdout).Execute()
	glog.Flush()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
