// Package manifest loads and queries the image manifest served under
// /api/images.
//
// The manifest is a nested JSON object. Directory names are object keys;
// a directory holding only files is an array of file names, and the files of
// a directory that also has subdirectories are listed under the empty key:
//
//	{
//	  "sculpture": {
//	    "": ["overview.jpg"],
//	    "copperplate": ["left.jpg", "right.jpg"]
//	  }
//	}
//
// [Scan] builds such a manifest from a directory tree, [Watch] rebuilds it
// whenever the tree changes and [Manifest.Lookup] walks it by path segments.
package manifest
