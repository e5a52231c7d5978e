// Package events reads SSI event logs.
//
// An event log is an XML document of the form
//
//	<events ssi-v="V2">
//	    <event sender="audio" event="vad" from="1500" dur="300" prob="1.000" type="EMPTY" state="COMPLETED" glue="0"/>
//	</events>
//
// The Reader yields completed events one at a time and skips every other
// state. Open transparently decompresses gzip, zstd and lz4 logs.
package events
