// Package emit turns a normalized operation list into runnable artifacts:
// a Python script or a Jupyter notebook that replays the operations through
// the SemT_py client.
//
// Operations are first converted into Steps, the typed view emitters work
// from. Code is produced by text/template blocks; every string value that
// reaches Python source goes through the py function, which renders a
// quoted literal.
package emit
