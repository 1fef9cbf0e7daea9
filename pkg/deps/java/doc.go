// Package java extracts dependencies from Maven and Gradle build files.
//
// # Maven
//
// [POM] walks pom.xml with an XML tokenizer and reports every <dependency>
// element, including those under <dependencyManagement> and plugins, named
// "groupId:artifactId". Scope test or provided maps to dev; scope optional
// or <optional>true</optional> maps to optional. Property placeholders such
// as ${spring.version} are kept verbatim. Malformed XML ends the walk; the
// dependencies seen so far are returned.
//
// # Gradle
//
// [Gradle] tokenizes build.gradle and build.gradle.kts and reads string
// coordinates passed to the standard dependency configurations, in both
// the Groovy form and the Kotlin call form:
//
//	implementation 'com.google.guava:guava:33.0.0-jre'
//	testImplementation("org.junit.jupiter:junit-jupiter:5.10.0")
//
// Coordinates given as catalog references (libs.foo) or platform(...)
// calls are not strings and are skipped.
package java
