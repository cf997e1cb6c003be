// Copyright (c) 2025 Aspilic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
itanket is the IT department satisfaction survey service.

Employees open a shared survey link, answer ten fixed questions and leave
their contact details; repeat submissions from the same e-mail are blocked
for a configurable window. Administrators sign in to a reporting dashboard
with headline counts, per-question breakdowns, a pooled satisfaction
distribution, question averages and a filterable answer listing, and can
download the whole report as a two-sheet Excel file or purge all collected
data.

Configuration comes from flags or environment variables (see the cliparse
package); state lives in PostgreSQL and the schema is created and seeded
on startup.
*/
package main
