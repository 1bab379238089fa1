// Package domain models the curated hazard-zone dataset for Abra province
// and the geometry used to evaluate it.
//
// # Data Source
//
// Zones are compiled by hand from agency reports (PAGASA flood and rainfall
// bulletins, PHIVOLCS fault and landslide susceptibility maps, MGB geohazard
// assessments). Each zone records the report it came from in its Source field.
// The dataset is shipped as a YAML file; GeoJSON exports of the same data are
// also accepted by the loader.
//
// # Coordinates
//
// Points are WGS-84 (latitude, longitude) pairs in decimal degrees. Boundaries
// are stored latitude-first to match the way field teams record them, which is
// the reverse of the GeoJSON [lon, lat] order:
//
//	boundary: [[17.6000, 120.6800], [17.6000, 120.7000], ...]
//
// Rings are implicitly closed. A trailing vertex equal to the first one is
// dropped by [NewHazardZone] so both encodings produce the same boundary.
//
// # Containment
//
// [Contains] uses ray casting along +longitude. An edge is counted only when
// exactly one endpoint has a latitude >= the point's latitude, so a vertex on
// the sweep line is never counted twice. Zero-length edges are skipped.
//
// A point lying on an edge or vertex counts as inside. For preparedness
// purposes a household sitting on the line of a flood zone is treated as
// exposed.
//
// # Risk Levels
//
// Three ordinal levels are defined: low < moderate < high. Query results are
// ordered by risk level descending, then by zone name ascending.
package domain
