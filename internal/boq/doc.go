// Package boq turns uploaded spreadsheet workbooks into normalized
// Bill-of-Quantities line items.
//
// This package contains all domain logic independent of any transport layer.
// It can be driven by web handlers, CLI tools, or tests without modification.
//
// # Pipeline
//
// Extraction is a strictly forward, purely functional pipeline per request:
//
//  1. The workbook adapter decodes the uploaded bytes (xlsx family via
//     excelize, legacy .xls via extrame/xls), selects one sheet, and emits
//     visible, non-empty rows of typed cells.
//  2. [DetectColumnRoles] scans a preview window (first [PreviewRows] rows)
//     and assigns at most one column to each semantic role: quantity, unit,
//     unit_price, amount, weight_kg. Caller-supplied header hints override
//     keyword matches.
//  3. [ClassifyRow] combines the role mapping with the article-code and unit
//     detectors to build one [BoqLine] per row, including the boolean
//     decision whether the row is a real quantity line.
//  4. [Summarize] folds qualifying lines into totals.
//
// No stage mutates another stage's output and nothing is cached across
// requests; the service is stateless by design.
//
// # Format Differences
//
// Hidden-row filtering is fully honored for the xlsx family. The legacy
// .xls reader exposes sheet visibility but no per-row hidden flag, so on
// that path every reported row is treated as visible; the emptiness filter
// still applies.
//
// # Error Handling
//
// Only two conditions are terminal: an extension outside the accepted set
// ([ErrUnsupportedExtension], checked before any decoding) and bytes the
// decoder cannot parse ([ErrUnreadableWorkbook]). Missing column roles,
// absent article codes, and non-numeric cells in quantity/weight columns are
// expected data variance and surface as null fields, never as errors.
//
// Technical errors are mapped to user-facing messages with support codes via
// [MapError] (EXT, WBK, FILE, UPL, RATE, SRV ranges).
package boq
