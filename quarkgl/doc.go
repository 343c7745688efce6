// Package quarkgl is a small software 3D engine used as the rendering host for the globe.
//
// It covers the host side of the globe: a perspective camera with cached view and
// projection matrices, ray construction from normalized device coordinates, ray/sphere
// hit tests, a mesh and polyline scene, and a fixed-pipeline rasterizer.
//
// Pipeline (fixed):
//
//	Scene → Transform → Projection → Clipping → Rasterization → Frame output.
//
// Vectors are golang/geo r3 vectors (float64). The renderer draws into a caller-provided
// Target and does not allocate in the per-triangle hot path.
package quarkgl
